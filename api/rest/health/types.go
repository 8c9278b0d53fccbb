package health

import (
	"context"

	"codeberg.org/sbomhub/server/internal/kong"
)

// Response represents the health check response
type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

type GatewayResponse struct {
	Status            string `json:"status"`
	DatabaseReachable bool   `json:"database_reachable"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// reports the gateway admin API status
type GatewayChecker interface {
	Status(ctx context.Context) (*kong.Status, error)
}
