package controllers

import (
	"log"
	"net/http"

	"cosmobits-leads-api/services"

	"github.com/gin-gonic/gin"
)

type SendLeadEmailRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendLeadEmail sends an ad-hoc message to a lead and, on success, appends a
// history entry carrying the sent subject and body. The lead's status is
// unchanged.
func SendLeadEmail(c *gin.Context) {
	var req SendLeadEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and message are required"})
		return
	}

	id := c.Param("id")

	lead, err := services.GetWithHistory(id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch lead")
		return
	}

	if err := services.SendLeadEmail(lead, req.Subject, req.Message); err != nil {
		log.Printf("lead email send failed (lead=%s subject=%q): %v", id, req.Subject, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	actor, _ := c.Get("email")
	if err := services.RecordEmailSent(id, req.Subject, req.Message, actor.(string)); err != nil {
		// The email went out; a bookkeeping failure is logged, not surfaced.
		log.Printf("failed to record sent email (lead=%s): %v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
