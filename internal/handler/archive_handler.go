package handler

import (
	"net/http"
	"strconv"

	"eventcal/internal/calendar"
	"eventcal/internal/repository"
	"eventcal/internal/service"
	apperrors "eventcal/pkg/app_errors"
	"eventcal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ArchiveHandler struct {
	service service.EventService
}

func NewArchiveHandler(service service.EventService) *ArchiveHandler {
	return &ArchiveHandler{service: service}
}

func (h *ArchiveHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("archive/:year", h.ListScope)
		router.GET("archive/:year/:month", h.ListScope)
		router.GET("archive/:year/:month/:day", h.ListScope)
	}
}

// ListScope serves the date-scoped archive listing: every event whose date
// interval intersects the requested year, month or day.
func (h *ArchiveHandler) ListScope(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid archive period"})
		return
	}

	events, err := h.service.ListByScope(c, scope)
	if err != nil {
		h.handleError(c, err, "ListScope")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":  calendar.ArchiveTitle("Events", " - ", scope.Year, scope.Month, scope.Day),
		"events": events,
	})
}

func parseScope(c *gin.Context) (repository.Scope, error) {
	var scope repository.Scope

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return scope, apperrors.ErrInvalidInput
	}
	scope.Year = year

	if raw := c.Param("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return scope, apperrors.ErrInvalidInput
		}
		scope.Month = month
	}

	if raw := c.Param("day"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 1 || day > 31 {
			return scope, apperrors.ErrInvalidInput
		}
		scope.Day = day
	}

	return scope, nil
}

func (h *ArchiveHandler) handleError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").
		With(zap.String("operation", operation), zap.Error(err)).
		Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
