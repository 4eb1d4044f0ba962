package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"cosmobits-leads-api/config"
	"cosmobits-leads-api/middleware"
	"cosmobits-leads-api/models"
	"cosmobits-leads-api/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/idtoken"
)

type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type SignInResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Declared as a variable so tests can stub Google's verifier.
var validateGoogleToken = func(ctx context.Context, rawToken string) (*idtoken.Payload, error) {
	return idtoken.Validate(ctx, rawToken, os.Getenv("GOOGLE_CLIENT_ID"))
}

// GoogleSignIn exchanges a verified Google ID token for a session JWT. Denials
// are deliberately uniform: the response never says whether the email is
// unknown, not allow-listed, or lacks a role.
func GoogleSignIn(c *gin.Context) {
	var req GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := validateGoogleToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}

	allowed, err := services.CanSignIn(email)
	if err != nil {
		log.Printf("sign-in check failed (email=%s): %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
		return
	}
	if !allowed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}

	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	user, err := services.UpsertGoogleUser(email, name, picture)
	if err != nil {
		log.Printf("user upsert failed (email=%s): %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
		return
	}

	token, err := generateToken(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, SignInResponse{Token: token, User: *user})
}

// GetMe returns the signed-in admin's account.
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// generateToken creates the session JWT.
func generateToken(user models.User) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}

	claims := middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
