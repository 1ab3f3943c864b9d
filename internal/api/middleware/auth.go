package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/config"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/response"
	"github.com/linskybing/engagement-go/pkg/utils"
)

const ServiceTokenHeader = "X-Service-Token"

// RequireRole lets only callers whose token carries role through.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaimsFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: string(role) + " only"})
			return
		}
		c.Next()
	}
}

// ServiceToken guards internal endpoints with the shared SERVICE_TOKEN. When
// no token is configured the endpoint is open.
func ServiceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		want := config.ServiceToken
		if want == "" {
			c.Next()
			return
		}
		got := c.GetHeader(ServiceTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid service token"})
			return
		}
		c.Next()
	}
}

// CORSMiddleware allows credentialed requests from origins that start with
// one of the configured prefixes. Websocket upgrades bypass it.
func CORSMiddleware(prefixes []string) gin.HandlerFunc {
	corsHandler := cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, p := range prefixes {
				if strings.HasPrefix(origin, p) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", ServiceTokenHeader, RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
