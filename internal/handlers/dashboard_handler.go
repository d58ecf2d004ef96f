package handlers

import (
	"net/http"

	"cartmart-be/internal/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboards dashboard.Service
}

func NewDashboardHandler(dashboards dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) AdminStats(c *gin.Context) {
	stats, err := h.dashboards.AdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) SellerOverview(c *gin.Context) {
	stats, recent, err := h.dashboards.SellerOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":        stats,
		"recentOrders": recent,
	})
}
