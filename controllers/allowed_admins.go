package controllers

import (
	"net/http"

	"cosmobits-leads-api/services"

	"github.com/gin-gonic/gin"
)

// GetAllowedAdmins lists the admin allow-list, newest first.
func GetAllowedAdmins(c *gin.Context) {
	admins, err := services.ListAllowedAdmins()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch allowed admins")
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed_admins": admins})
}

type AddAllowedAdminRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AddAllowedAdmin grants an email admin access on its next sign-in.
func AddAllowedAdmin(c *gin.Context) {
	var req AddAllowedAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorEmail, _ := c.Get("email")
	actorRole, _ := c.Get("role")

	admin, err := services.AddAllowedAdmin(req.Email, req.Name, actorEmail.(string), actorRole.(string))
	if err != nil {
		respondServiceError(c, err, "Failed to add allowed admin")
		return
	}

	c.JSON(http.StatusCreated, admin)
}

// RemoveAllowedAdmin deletes an allow-list entry. The super admin's own entry
// is protected and comes back 403.
func RemoveAllowedAdmin(c *gin.Context) {
	actorRole, _ := c.Get("role")

	if err := services.RemoveAllowedAdmin(c.Param("id"), actorRole.(string)); err != nil {
		respondServiceError(c, err, "Failed to remove allowed admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
