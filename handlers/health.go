package handlers

import (
	"net/http"

	"datachat/models"

	"github.com/gin-gonic/gin"
)

// HealthHandler checks the health status of the service
// @Summary      Health check
// @Description  Reports the session store in use, its live sessions and whether a model API key is configured
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.HealthResponse  "Service health status"
// @Failure      503  {object}  models.HealthResponse  "Session store unavailable"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	status := models.HealthResponse{
		Status: "healthy",
		Store:  h.storeName,
		Model:  "ready",
	}
	if !h.dashboard.HasModel() {
		status.Model = "missing_api_key"
	}

	n, err := h.dashboard.Sessions()
	if err != nil {
		h.log.Error(module, "health check failed", map[string]interface{}{"store": h.storeName, "error": err})
		status.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status.Sessions = n
	c.JSON(http.StatusOK, status)
}
