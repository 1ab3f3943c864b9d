package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/api/handlers"
	"github.com/linskybing/engagement-go/internal/api/middleware"
	"github.com/linskybing/engagement-go/internal/domain/user"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes mounts the engagement authority's API on r.
func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.GET("/healthz", healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Called by the messaging and payment gates, not by browsers.
	r.GET("/agreements/match", middleware.ServiceToken(), h.Agreement.Match)
	r.POST("/webhooks/payments", h.Webhook.PaymentCompleted)

	requesterOnly := middleware.RequireRole(user.RoleRequester)
	providerOnly := middleware.RequireRole(user.RoleProvider)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		campaigns := auth.Group("/campaigns")
		{
			campaigns.GET("", h.Campaign.ListActive)
			campaigns.GET("/mine", requesterOnly, h.Campaign.ListMine)
			campaigns.GET("/:id", h.Campaign.Get)
			campaigns.POST("", requesterOnly, h.Campaign.Create)
			campaigns.PUT("/:id", requesterOnly, h.Campaign.Update)

			campaigns.POST("/:id/applications", providerOnly, h.Offer.Apply)
			campaigns.GET("/:id/applications", requesterOnly, h.Offer.ListApplicationsForCampaign)
			campaigns.POST("/:id/invitations/:providerId", requesterOnly, h.Offer.Invite)
			campaigns.GET("/:id/invitations", requesterOnly, h.Offer.ListInvitationsForCampaign)
		}

		applications := auth.Group("/applications")
		{
			applications.GET("/mine", providerOnly, h.Offer.ListMyApplications)
			applications.GET("/received", requesterOnly, h.Offer.ListReceivedApplications)
			applications.PUT("/:id/status", requesterOnly, h.Offer.SetApplicationStatus)
		}

		invitations := auth.Group("/invitations")
		{
			invitations.GET("/mine", providerOnly, h.Offer.ListMyInvitations)
			invitations.PUT("/:id/status", providerOnly, h.Offer.SetInvitationStatus)
		}

		auth.GET("/agreements/mine", h.Agreement.ListMine)
		auth.GET("/audit/logs", h.Audit.GetAuditLogs)
	}
}

// RegisterMessagingRoutes mounts the messaging gate's API on r.
func RegisterMessagingRoutes(r *gin.Engine, h *handlers.MessagingHandlers) {
	r.GET("/healthz", healthz)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.POST("/messages", h.Message.Send)
		auth.GET("/messages/:userId/agreement/:agreementId", h.Message.History)
		auth.GET("/ws/messages", h.Push.Stream)
	}
}
