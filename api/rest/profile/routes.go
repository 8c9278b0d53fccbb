package profile

import (
	"codeberg.org/sbomhub/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the bearer-guarded sample API routes
func RegisterRoutes(router *gin.RouterGroup, verifier auth.Verifier) {
	guarded := router.Group("", auth.BearerMiddleware(verifier))
	{
		guarded.GET("/profile", ProfileHandler)
		guarded.GET("/protected", ProtectedHandler)
		guarded.GET("/data", DataHandler)
	}
}
