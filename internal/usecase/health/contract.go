package health

import "context"

// VectorPinger checks vector store availability.
type VectorPinger interface {
	Ping(ctx context.Context) error
}

// RelationalPinger checks relational backend availability.
type RelationalPinger interface {
	Ping(ctx context.Context) error
}

// OracleChecker checks LLM provider availability.
type OracleChecker interface {
	HealthCheck(ctx context.Context) error
}
