package auth

import (
	"codeberg.org/sbomhub/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the browser sign-in routes and the token bootstrap endpoints
func RegisterRoutes(router *gin.Engine, deps *Dependencies) {
	router.GET(LoginPath, LoginHandler(deps))
	router.GET(CallbackPath, CallbackHandler(deps))
	router.GET("/logout", LogoutHandler(deps))
	router.GET("/get-token", auth.CookieMiddleware(deps.Verifier, LoginPath), TokenHandler())
}

// registers the JSON token endpoint on the api group
func RegisterAPIRoutes(router *gin.RouterGroup, deps *Dependencies) {
	router.GET("/get-auth-token", auth.OptionalCookieMiddleware(deps.Verifier), TokenHandler())
}
