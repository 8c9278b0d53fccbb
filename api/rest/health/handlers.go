package health

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const gatewayCheckTimeout = 5 * time.Second

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: "sbomhub",
		Version: "1.0.0",
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

// reports whether the gateway admin API answers /status
func GatewayHandler(checker GatewayChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), gatewayCheckTimeout)
		defer cancel()

		status, err := checker.Status(ctx)
		if err != nil {
			logger.Warn("gateway health check failed", "error", err)
			errors.ServiceUnavailable(c, "gateway unreachable")
			return
		}

		c.JSON(http.StatusOK, GatewayResponse{
			Status:            "healthy",
			DatabaseReachable: status.Database.Reachable,
		})
	}
}
