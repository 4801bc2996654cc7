package handler

import (
	"net/http"

	"eventcal/internal/model"
	"eventcal/internal/service"
	"eventcal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// yearWindow bounds how far the calendar can be paged from the current
// year, to stop crawlers from walking an endless archive.
const yearWindow = 15

type CalendarHandler struct {
	service service.CalendarService
}

func NewCalendarHandler(service service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

func (h *CalendarHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("calendar", h.Show)
		router.POST("calendar/refresh", h.Refresh)
	}
}

type calendarRequest struct {
	Year  int  `form:"year"`
	Month int  `form:"month"`
	Full  bool `form:"full"`
}

// Show returns the rendered calendar table fragment for the requested
// month, defaulting to the current one.
func (h *CalendarHandler) Show(c *gin.Context) {
	var req calendarRequest
	if err := BindQuery(c, &req); err != nil {
		return
	}

	year, month := clampPeriod(req.Year, req.Month)

	cal, err := h.service.Build(c, year, month, req.Full)
	if err != nil {
		h.handleError(c, err, "Show")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cal.Render()))
}

// Refresh serves the asynchronous month-navigation payload.
func (h *CalendarHandler) Refresh(c *gin.Context) {
	var req calendarRequest
	if err := BindForm(c, &req); err != nil {
		return
	}

	year, month := clampPeriod(req.Year, req.Month)

	cal, err := h.service.Build(c, year, month, req.Full)
	if err != nil {
		h.handleError(c, err, "Refresh")
		return
	}

	c.JSON(http.StatusOK, cal.Payload())
}

// clampPeriod fills in missing values from today and pulls far-out years
// back to the current one.
func clampPeriod(year, month int) (int, int) {
	today := model.Today()

	if year == 0 {
		year = today.Year
	}
	if month == 0 {
		month = today.Month
	}

	if year > today.Year+yearWindow || year < today.Year-yearWindow {
		year = today.Year
	}

	return year, month
}

func (h *CalendarHandler) handleError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").
		With(zap.String("operation", operation), zap.Error(err)).
		Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
