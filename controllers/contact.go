package controllers

import (
	"log"
	"net/http"

	"cosmobits-leads-api/config"
	"cosmobits-leads-api/services"

	"github.com/gin-gonic/gin"
)

type ContactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Phone          string `json:"phone"`
	Service        string `json:"service"`
	Message        string `json:"message"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// CreateContactSubmission handles the public contact form. The database write
// is the priority path: once the lead is saved the request reports success,
// with messaging that only varies on whether the notification emails went out.
func CreateContactSubmission(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RecaptchaToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reCAPTCHA verification required"})
		return
	}

	result, err := config.VerifyRecaptcha(req.RecaptchaToken)
	if err != nil || !result.Success {
		if err != nil {
			log.Printf("recaptcha verification error: %v", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "reCAPTCHA verification failed. Please try again."})
		return
	}

	submission, err := services.CreateSubmission(services.SubmissionInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to save your information. Please try again.")
		return
	}

	// Best effort from here on: a failed email never fails the request.
	emailSent, emailErr := services.SendIntakeNotifications(submission)
	if err := services.MarkEmailOutcome(submission.ID, emailSent, emailErr); err != nil {
		log.Printf("failed to record email outcome (lead=%s): %v", submission.ID, err)
	}

	message := "Your information has been saved. We will contact you soon."
	if emailSent {
		message = "Your message has been sent successfully!"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"id":        submission.ID,
		"emailSent": emailSent,
		"message":   message,
	})
}
