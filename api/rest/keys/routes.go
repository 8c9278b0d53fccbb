package keys

import (
	"codeberg.org/sbomhub/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, manager KeyManager, verifier auth.Verifier) {
	guarded := router.Group("", auth.BearerMiddleware(verifier))
	{
		guarded.GET("/keys", ListKeysHandler(manager))
		guarded.POST("/keys", CreateKeyHandler(manager))
		guarded.DELETE("/keys/:id", RevokeKeyHandler(manager))
		guarded.GET("/consumer", ConsumerHandler(manager))
	}
}
