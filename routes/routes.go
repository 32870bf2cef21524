package routes

import (
	"net/http"

	"counselconnect/handlers"
	"counselconnect/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.Default())

	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterNotifyRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterHealthRoute(r)
}

// RegisterChatRoutes registers the conversational booking endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/session", hb.StartChatSession)
		api.POST("/session/:sessionID/message", hb.AdvanceChat)
	}
}

// RegisterNotifyRoutes registers direct notification endpoints.
func RegisterNotifyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notify")
	{
		api.POST("/email", hb.SendEmail)
	}
}

// RegisterAuthRoutes registers the counselor calendar onboarding flow.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/auth")
	{
		auth.GET("/url", hb.AuthConsentURL)
		auth.GET("/callback", hb.AuthCallback)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
