package handler

import (
	"fmt"
	"net/http"
	"time"

	"eventcal/internal/model"
	"eventcal/internal/service"
	"eventcal/pkg/logger"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedHandler struct {
	service service.EventService
}

func NewFeedHandler(service service.EventService) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/events.ics", h.Feed)
}

// Feed exports every published event as an iCalendar document.
func (h *FeedHandler) Feed(c *gin.Context) {
	events, err := h.service.Published(c)
	if err != nil {
		logger.WithComponent("handler").
			With(zap.String("operation", "Feed"), zap.Error(err)).
			Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, event := range events {
		entry := cal.AddEvent(fmt.Sprintf("%s@eventcal", event.EventID))
		entry.SetDtStampTime(event.UpdatedAt)
		entry.SetSummary(event.Title)

		if event.Description != nil {
			entry.SetDescription(*event.Description)
		}
		if event.LocationAddress != "" {
			entry.SetLocation(event.LocationAddress)
		} else if event.LocationName != "" {
			entry.SetLocation(event.LocationName)
		}

		if event.AllDay || event.StartTime == "" {
			entry.SetAllDayStartAt(event.StartDate.Time())
			// DTEND is exclusive, the stored end date is inclusive.
			entry.SetAllDayEndAt(event.EndDate.AddDays(1).Time())
		} else {
			entry.SetStartAt(atTime(event.StartDate, event.StartTime))
			end := event.EndTime
			if end == "" {
				end = event.StartTime
			}
			entry.SetEndAt(atTime(event.EndDate, end))
		}
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

// atTime combines an event date with a stored HH:MM string. A time that
// fails to parse degrades to midnight.
func atTime(d model.Date, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return d.Time()
	}
	return d.Time().Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}
