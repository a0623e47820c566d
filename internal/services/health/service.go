package health

import (
	"context"
	"database/sql"
	"time"

	"cv-builder/internal/sessions"
)

const pingTimeout = 2 * time.Second

// Status is the liveness payload.
type Status struct {
	OK       bool   `json:"ok"`
	Storage  string `json:"storage"`
	Sessions int    `json:"sessions"`
}

// Service encapsulates health-related checks.
type Service struct {
	Sessions *sessions.Store
	DB       *sql.DB
}

// NewService constructs a new health service. db may be nil when the
// generation ledger is kept in memory.
func NewService(store *sessions.Store, db *sql.DB) *Service {
	return &Service{Sessions: store, DB: db}
}

// Status reports liveness, the ledger backend, and the live session count.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Storage: "memory"}
	if s.Sessions != nil {
		out.Sessions = s.Sessions.Len()
	}
	if s.DB != nil {
		out.Storage = "postgres"
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			out.OK = false
		}
	}
	return out
}
