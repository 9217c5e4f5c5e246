package postgres

import "context"

// HealthCheck reports database connectivity for the health endpoint.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

func (h *HealthCheck) Name() string {
	return "postgres"
}
