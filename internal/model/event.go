package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
)

// Event is an event record with its date, time, location and price metadata
// as explicit typed fields.
type Event struct {
	ID              int       `json:"id" db:"id"`
	EventID         uuid.UUID `json:"event_id" db:"event_id"`
	Title           string    `json:"title" db:"title"`
	Slug            string    `json:"slug" db:"slug"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Status          string    `json:"status" db:"status"`
	StartDate       Date      `json:"start_date" db:"start_date"`
	EndDate         Date      `json:"end_date" db:"end_date"`
	StartTime       string    `json:"start_time,omitempty" db:"start_time"`
	EndTime         string    `json:"end_time,omitempty" db:"end_time"`
	AllDay          bool      `json:"all_day" db:"all_day"`
	LocationName    string    `json:"location_name,omitempty" db:"location_name"`
	LocationAddress string    `json:"location_address,omitempty" db:"location_address"`
	Latitude        *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64  `json:"longitude,omitempty" db:"longitude"`
	Price           float64   `json:"price" db:"price"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateEventParams struct {
	Title           *string
	Description     *string
	Status          *string
	StartDate       *Date
	EndDate         *Date
	StartTime       *string
	EndTime         *string
	AllDay          *bool
	LocationName    *string
	LocationAddress *string
	Latitude        *float64
	Longitude       *float64
	Price           *float64
}

// Normalize applies the save-time defaults. The end date is optional on
// input but required by every archive and calendar query, so a blank end
// date becomes the start date. Idempotent under repeated application.
func (e *Event) Normalize() {
	if e.EndDate.IsZero() {
		e.EndDate = e.StartDate
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
}

// OccursOn reports whether the event occurs on the given day: it starts
// then, ends then, or the day falls inside its date interval. Comparisons
// run over the YYYYMMDD encoding.
func (e *Event) OccursOn(day Date) bool {
	ymd := day.Ymd()
	return e.StartDate.Ymd() == ymd ||
		e.EndDate.Ymd() == ymd ||
		(ymd >= e.StartDate.Ymd() && ymd <= e.EndDate.Ymd())
}
