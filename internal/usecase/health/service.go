// Package health reports whether the embedded store is reachable.
package health

import (
	"context"
	"fmt"
)

// Pinger is the liveness probe of the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service answers health checks.
type Service struct {
	store Pinger
}

// New creates a health service.
func New(store Pinger) *Service {
	return &Service{store: store}
}

// Check pings the store.
func (s *Service) Check(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store ping: %w", err)
	}
	return nil
}
