package server

import (
	"context"

	"github.com/PRATHVI9607/PaymentAI/internal/assistant"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// AssistantHealthService verifies that the external completion service is
// reachable as part of health checks.
type AssistantHealthService struct {
	Client assistant.CompletionClient
}

// Probe implements the HealthService interface.
func (s AssistantHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Ping(ctx)
}
