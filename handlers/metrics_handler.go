package handlers

import (
	"net/http"
	"time"

	"control-tower-api/services"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metricsService services.MetricsService
}

func NewMetricsHandler(metricsService services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

func (h *MetricsHandler) GetPipelineMetrics(c *gin.Context) {
	metrics, err := h.metricsService.PipelineMetrics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

func (h *MetricsHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.metricsService.DashboardStats(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
