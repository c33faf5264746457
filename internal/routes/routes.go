package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/givespark/moderation-backend/internal/handler"
	"github.com/givespark/moderation-backend/internal/middleware"
	"github.com/givespark/moderation-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	moderationHandler *handler.ModerationHandler,
	jwtManager *jwt.Manager,
) {
	// All moderation endpoints are admin/reviewer surface
	api := router.Group("/api/v1", middleware.JWTAuth(jwtManager), middleware.RequireAdmin())

	campaigns := api.Group("/campaigns")
	campaigns.POST("/:id/moderate", moderationHandler.Moderate)
	campaigns.GET("/:id/moderation", moderationHandler.GetLatest)
	campaigns.GET("/:id/moderation/history", moderationHandler.GetHistory)
	campaigns.GET("/:id/moderation/reviews", moderationHandler.GetReviews)

	moderation := api.Group("/moderation")
	moderation.POST("/batch", moderationHandler.BatchModerate)
	moderation.POST("/:id/review", moderationHandler.SubmitReview)
	moderation.GET("/queue", moderationHandler.GetQueue)
}
