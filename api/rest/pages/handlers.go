package pages

import (
	"net/http"

	"codeberg.org/sbomhub/server/internal/auth"
	"github.com/gin-gonic/gin"
)

var plans = []Plan{
	{ID: "free", Name: "Free", Price: "0"},
	{ID: "pro", Name: "Pro", Price: "29"},
}

// renders the public landing page
func LandingHandler(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusOK, LandingResponse{Authenticated: false})
		return
	}

	user := userFrom(claims)
	c.JSON(http.StatusOK, LandingResponse{Authenticated: true, User: &user})
}

func PricingHandler(c *gin.Context) {
	_, ok := auth.GetClaims(c)
	c.JSON(http.StatusOK, PricingResponse{Authenticated: ok, Plans: plans})
}

// renders the protected landing page reached after sign-in
func DashboardHandler(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		User:      userFrom(claims),
		AuthToken: auth.GetToken(c),
	})
}

func userFrom(claims *auth.Claims) User {
	return User{
		ID:      claims.UserID,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}
}
