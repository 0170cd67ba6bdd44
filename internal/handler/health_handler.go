package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/utils"
)

// HealthHandler reports service liveness and whether the config store is readable.
type HealthHandler struct {
	configRepo *repository.ConfigRepository
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(configRepo *repository.ConfigRepository) *HealthHandler {
	return &HealthHandler{configRepo: configRepo}
}

// GetHealth handles GET /api/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := "ok"
	configStatus := "ok"
	if _, err := h.configRepo.Read(); err != nil {
		status = "degraded"
		configStatus = "unreadable"
	}
	utils.Success(c, 200, "Health check", gin.H{
		"status": status,
		"config": configStatus,
	})
}
