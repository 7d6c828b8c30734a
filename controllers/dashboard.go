package controllers

import (
	"net/http"
	"time"

	"scholar-monitor-api/services"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard/stats
// Flat counter block: totals, month-over-month deltas, today's additions.
func GetDashboardStats(c *gin.Context) {
	svc := services.NewDashboardService(nil)
	stats, err := svc.Stats(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GET /api/activities?limit=10
func GetRecentActivities(c *gin.Context) {
	limit := parseIntOrDefault(c.Query("limit"), 10)

	svc := services.NewActivityService(nil)
	activities, err := svc.Recent(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}
