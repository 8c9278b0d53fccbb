package profile

import (
	"net/http"
	"time"

	"codeberg.org/sbomhub/server/internal/auth"
	"codeberg.org/sbomhub/server/internal/errors"
	"github.com/gin-gonic/gin"
)

var sampleItems = []Item{
	{ID: 1, Name: "Item 1", Description: "First item"},
	{ID: 2, Name: "Item 2", Description: "Second item"},
	{ID: 3, Name: "Item 3", Description: "Third item"},
}

// ProfileHandler godoc
// @Summary Get profile
// @Description Returns the identity carried by the bearer token
// @Tags api
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/profile [get]
// @Security BearerAuth
func ProfileHandler(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	})
}

// ProtectedHandler godoc
// @Summary Protected example
// @Tags api
// @Produce json
// @Success 200 {object} ProtectedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/protected [get]
// @Security BearerAuth
func ProtectedHandler(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, ProtectedResponse{
		Message:   "This is a protected API endpoint",
		User:      claims.Email,
		Timestamp: time.Now().UTC(),
	})
}

// DataHandler godoc
// @Summary Sample data
// @Tags api
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/data [get]
// @Security BearerAuth
func DataHandler(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, DataResponse{
		Data: sampleItems,
		User: claims.Email,
	})
}
