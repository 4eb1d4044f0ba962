package controllers

import (
	"net/http"
	"time"

	"cosmobits-leads-api/config"
	"cosmobits-leads-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the counts shown on the admin overview page.
func GetDashboardStats(c *gin.Context) {
	var total int64
	if err := config.DB.Model(&models.ContactSubmission{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	byStatus := make(map[string]int64, len(models.AllLeadStatuses))
	for _, status := range models.AllLeadStatuses {
		var count int64
		if err := config.DB.Model(&models.ContactSubmission{}).
			Where("current_status = ?", status).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		byStatus[string(status)] = count
	}

	var recent int64
	since := time.Now().AddDate(0, 0, -30)
	if err := config.DB.Model(&models.ContactSubmission{}).
		Where("created_at >= ?", since).
		Count(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_leads":  total,
		"by_status":    byStatus,
		"last_30_days": recent,
	})
}
