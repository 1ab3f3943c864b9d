package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/api/handlers"
	"github.com/linskybing/engagement-go/internal/api/routes"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/messaging"
)

// SetupRouter builds the engagement API over svc in gin test mode.
func SetupRouter(svc *application.Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, handlers.New(svc))
	return r
}

// SetupMessagingRouter builds the messaging gate over svc and hub.
func SetupMessagingRouter(svc *application.MessageService, hub *messaging.Hub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterMessagingRoutes(r, handlers.NewMessaging(svc, hub))
	return r
}
