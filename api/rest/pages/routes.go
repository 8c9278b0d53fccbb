package pages

import (
	"codeberg.org/sbomhub/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the browser pages; loginPath is where the cookie guard redirects
func RegisterRoutes(router *gin.Engine, verifier auth.Verifier, loginPath string) {
	router.GET("/", auth.OptionalCookieMiddleware(verifier), LandingHandler)
	router.GET("/pricing", auth.OptionalCookieMiddleware(verifier), PricingHandler)
	router.GET("/dashboard", auth.CookieMiddleware(verifier, loginPath), DashboardHandler)
}
