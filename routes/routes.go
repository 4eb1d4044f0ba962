package routes

import (
	"cosmobits-leads-api/controllers"
	"cosmobits-leads-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Contact form intake
			public.POST("/contact", controllers.CreateContactSubmission)

			// Google sign-in for the admin area
			public.POST("/auth/google", controllers.GoogleSignIn)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "CosmoBits Leads API is running",
				})
			})
		}

		// Admin routes (require an authenticated admin session)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			admin.GET("/me", controllers.GetMe)
			admin.GET("/stats", controllers.GetDashboardStats)

			// Leads
			leads := admin.Group("/leads")
			{
				leads.GET("", controllers.GetLeads)
				leads.GET("/:id", controllers.GetLead)
				leads.PATCH("/:id", controllers.UpdateLeadStatus)
				leads.POST("/:id/email", controllers.SendLeadEmail)
			}

			// Allow-list management (super admin only; the service enforces
			// the role again on every mutation)
			allowedAdmins := admin.Group("/allowed-admins")
			{
				allowedAdmins.GET("", controllers.GetAllowedAdmins)
				allowedAdmins.POST("", middleware.RequireSuperAdmin(), controllers.AddAllowedAdmin)
				allowedAdmins.DELETE("/:id", middleware.RequireSuperAdmin(), controllers.RemoveAllowedAdmin)
			}
		}
	}
}
