package calendar

import (
	"fmt"
	"strings"

	"eventcal/internal/hooks"
	"eventcal/internal/model"
	"eventcal/internal/settings"

	"github.com/google/uuid"
)

// gridDays is the fixed cell count: six full weeks.
const gridDays = 42

// CSS class suffixes, keyed with short names to keep the rendering code
// compact.
var classNames = map[string]string{
	"pm": "prev-month",
	"py": "prev-year",
	"nm": "next-month",
	"ny": "next-year",
	"ca": "calendar",
	"co": "control",
	"cu": "current",
	"wd": "weekday",
	"pa": "past",
	"fu": "future",
	"to": "today",
	"ev": "events",
}

// EventRef is one event attached to a calendar day. Only the identifier and
// permalink travel in the refresh payload; the remaining fields feed the
// full rendering mode.
type EventRef struct {
	ID        uuid.UUID `json:"id"`
	Permalink string    `json:"permalink"`
	Title     string    `json:"-"`
	StartTime string    `json:"-"`
	EndTime   string    `json:"-"`
	AllDay    bool      `json:"-"`
}

// Day is one computed grid cell. The JSON field names form the refresh
// payload contract consumed by the client-side controller.
type Day struct {
	Class  string     `json:"class"`
	Label  string     `json:"date"`
	Events []EventRef `json:"events"`
	Link   string     `json:"link"`

	date model.Date
}

// BuildGrid computes the 42 day cells for the given month. The grid starts
// one week before the first occurrence of the configured week-start weekday
// in the month, so every month renders as six full rows. Events are only
// attached to days inside the displayed month; the dimmed spill-over days
// from adjacent months stay empty.
func BuildGrid(year, month int, today model.Date, events []*model.Event, opts settings.Options, reg *hooks.Registry) []Day {
	current := model.NewDate(year, month, 1)

	// First occurrence of the week-start day in the month, minus one week.
	start := current
	for start.Weekday() != opts.WeekStart {
		start = start.AddDays(1)
	}
	start = start.AddDays(-7)

	dayFormat := applyString(reg, hooks.DayFormat, opts.DayFormat)

	days := make([]Day, 0, gridDays)

	for i := 0; i < gridDays; i++ {
		date := start.AddDays(i)

		refs := make([]EventRef, 0)
		if date.SameMonth(current) {
			for _, e := range events {
				if e.OccursOn(date) {
					refs = append(refs, EventRef{
						ID:        e.EventID,
						Permalink: eventLink(e, opts, reg),
						Title:     e.Title,
						StartTime: e.StartTime,
						EndTime:   e.EndTime,
						AllDay:    e.AllDay,
					})
				}
			}
		}

		var class string
		switch {
		case date.Equal(today):
			class = cKeys(opts, reg, "to")
		case date.SameMonth(current):
			class = cKeys(opts, reg, "cu")
		case current.After(date):
			class = cKeys(opts, reg, "pa")
		default:
			class = cKeys(opts, reg, "fu")
		}

		if len(refs) > 0 {
			class += " " + cKeys(opts, reg, "ev")
		}

		days = append(days, Day{
			Class:  class,
			Label:  date.Format(dayFormat),
			Events: refs,
			Link:   dayLink(date, opts, reg),
			date:   date,
		})
	}

	return days
}

func eventLink(e *model.Event, opts settings.Options, reg *hooks.Registry) string {
	link := opts.ArchiveBase + "/" + e.Slug
	return applyString(reg, hooks.EventLink, link)
}

func dayLink(date model.Date, opts settings.Options, reg *hooks.Registry) string {
	link := fmt.Sprintf("%s/%04d/%02d/%02d/", opts.ArchiveBase, date.Year, date.Month, date.Day)
	return applyString(reg, hooks.DayLink, link)
}

// cKeys resolves one or more short class keys into prefixed class names.
func cKeys(opts settings.Options, reg *hooks.Registry, keys string) string {
	prefix := applyString(reg, hooks.ClassPrefix, opts.ClassPrefix)

	out := make([]string, 0, 2)
	for _, key := range strings.Split(keys, ",") {
		if name, ok := classNames[strings.TrimSpace(key)]; ok {
			out = append(out, prefix+name)
		}
	}
	return strings.Join(out, " ")
}
