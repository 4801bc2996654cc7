package handler

import (
	"net/http"

	"eventcal/internal/model"
	"eventcal/internal/repository"
	"eventcal/internal/service"
	apperrors "eventcal/pkg/app_errors"
	"eventcal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultUpcomingLimit = 3

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/upcoming", h.Upcoming)
		router.GET("events/archive", h.Archive)
		router.GET("events/:uuid", h.GetByEventID)
		router.POST("events", h.Create)
		router.PUT("events/:uuid", h.UpdateByEventID)
	}
}

type CreateEventRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     *string  `json:"description"`
	Status          string   `json:"status" binding:"omitempty,oneof=draft publish"`
	StartDate       string   `json:"start_date" binding:"required"`
	EndDate         string   `json:"end_date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	AllDay          bool     `json:"all_day"`
	LocationName    string   `json:"location_name"`
	LocationAddress string   `json:"location_address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Price           float64  `json:"price"`
}

type UpdateEventRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Status          *string  `json:"status" binding:"omitempty,oneof=draft publish"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"`
	StartTime       *string  `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	AllDay          *bool    `json:"all_day"`
	LocationName    *string  `json:"location_name"`
	LocationAddress *string  `json:"location_address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Price           *float64 `json:"price"`
}

type upcomingQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// List serves the unscoped event index: upcoming published events, nearest
// first.
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.ListByScope(c, repository.Scope{})
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Upcoming(c *gin.Context) {
	var q upcomingQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultUpcomingLimit
	}

	events, err := h.service.Upcoming(c, q.Limit)
	if err != nil {
		h.handleError(c, err, "Upcoming")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Archive(c *gin.Context) {
	index, err := h.service.Archive(c)
	if err != nil {
		h.handleError(c, err, "Archive")
		return
	}
	c.JSON(http.StatusOK, index)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "GetByEventID")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	startDate, err := model.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}

	var endDate model.Date
	if req.EndDate != "" {
		endDate, err = model.ParseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
			return
		}
	}

	event := &model.Event{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		AllDay:          req.AllDay,
		LocationName:    req.LocationName,
		LocationAddress: req.LocationAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Price:           req.Price,
	}

	created, err := h.service.Create(c, event)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) UpdateByEventID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	params := model.UpdateEventParams{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		AllDay:          req.AllDay,
		LocationName:    req.LocationName,
		LocationAddress: req.LocationAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Price:           req.Price,
	}

	if req.StartDate != nil {
		d, err := model.ParseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
			return
		}
		params.StartDate = &d
	}

	if req.EndDate != nil {
		// A blank end date is allowed; the service defaults it to the
		// effective start date.
		var d model.Date
		if *req.EndDate != "" {
			var err error
			d, err = model.ParseDate(*req.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
				return
			}
		}
		params.EndDate = &d
	}

	updated, err := h.service.UpdateByEventID(c, eventID, params)
	if err != nil {
		h.handleError(c, err, "UpdateByEventID")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrInvalidDate:
		log.Warn("Invalid date")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
