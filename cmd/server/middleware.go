package main

import (
	"fmt"
	"net/http"
	"time"

	"codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// attaches a request-scoped logger carrying the request id to the request
// context and writes one access line per request. an inbound X-Request-ID
// is kept so ids line up with the fronting gateway's logs
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		l := logger.With("request_id", id)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		c.Next()

		l.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// allows browser clients on the configured origins to call /api with a
// bearer token
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// turns panics into a 500 without exposing the panic value
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"panic", fmt.Sprint(recovered),
		)

		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errors.ErrorResponse{
				Error:   errors.CodeServerError,
				Message: "internal server error",
			})
			return
		}

		errors.Page(c, http.StatusInternalServerError, "Internal server error", "Something went wrong. Please try again later.")
		c.Abort()
	})
}
