package controllers

import (
	"net/http"
	"strconv"

	"cosmobits-leads-api/services"

	"github.com/gin-gonic/gin"
)

// GetLeads returns a paginated, filterable list of leads for the admin table.
func GetLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")
	status := c.Query("status")

	result, err := services.ListLeads(search, status, page, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch leads")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": result.Items,
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.PageSize,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

// GetLead returns one lead with its full history, oldest entry first.
func GetLead(c *gin.Context) {
	lead, err := services.GetWithHistory(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch lead")
		return
	}

	c.JSON(http.StatusOK, lead)
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// UpdateLeadStatus assigns a new pipeline status and logs it to the history.
func UpdateLeadStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, _ := c.Get("email")

	lead, err := services.UpdateStatus(c.Param("id"), req.Status, req.Comment, actor.(string))
	if err != nil {
		respondServiceError(c, err, "Failed to update status")
		return
	}

	c.JSON(http.StatusOK, lead)
}
