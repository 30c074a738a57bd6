package controllers

import (
	"net/http"

	"github.com/fidelity-club/fidelity-be/config"
	"github.com/fidelity-club/fidelity-be/services"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboardService *services.DashboardService
}

func NewDashboardController() *DashboardController {
	return &DashboardController{
		dashboardService: services.NewDashboardService(config.DB),
	}
}

func (dc *DashboardController) GetClientDashboard(c *gin.Context) {
	userID, _ := c.Get("user_id")

	stats, err := dc.dashboardService.GetClientDashboard(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (dc *DashboardController) GetReceptionistDashboard(c *gin.Context) {
	stats, err := dc.dashboardService.GetReceptionistDashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (dc *DashboardController) GetAdminDashboard(c *gin.Context) {
	stats, err := dc.dashboardService.GetAdminDashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
