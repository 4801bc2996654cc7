package handler

import (
	"net/http"

	"eventcal/internal/settings"
	"eventcal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("settings", h.Show)
		router.PUT("settings", h.Save)
	}
}

// Show returns the effective display settings.
func (h *SettingsHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Load(c))
}

// Save persists display setting overrides. Values take effect on the next
// calendar request.
func (h *SettingsHandler) Save(c *gin.Context) {
	var fields map[string]string
	if err := BindJson(c, &fields); err != nil {
		return
	}

	if err := h.store.Save(c, fields); err != nil {
		logger.WithComponent("handler").
			With(zap.String("operation", "Save"), zap.Error(err)).
			Error("Failed to persist settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, h.store.Load(c))
}
