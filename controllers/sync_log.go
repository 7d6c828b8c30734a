package controllers

import (
	"net/http"

	"scholar-monitor-api/services"

	"github.com/gin-gonic/gin"
)

// GET /api/sync-logs?scholar_id&size&offset
// Read-only audit trail, newest first.
func ListSyncLogs(c *gin.Context) {
	scholarID := uint(parseIntOrDefault(c.Query("scholar_id"), 0))
	size := parseIntOrDefault(c.Query("size"), 10)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	svc := services.NewSyncLogService(nil)
	logs, total, err := svc.List(scholarID, size, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "data": logs})
}
