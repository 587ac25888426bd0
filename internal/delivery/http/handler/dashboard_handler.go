package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardUsecase "admin-dashboard/internal/usecase/dashboard"
	"admin-dashboard/pkg/utils"
)

type DashboardHandler struct {
	service *dashboardUsecase.Service
}

func NewDashboardHandler(service *dashboardUsecase.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
		dashboard.GET("/charts/:type", h.GetChartData)
	}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

func (h *DashboardHandler) GetChartData(c *gin.Context) {
	data, err := h.service.GetChartData(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", data)
}
