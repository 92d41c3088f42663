package state

import (
	"context"

	"quizdojo/internal/leaderboard"
	"quizdojo/internal/session"
)

type Store interface {
	leaderboard.Store

	EnsureSchema(ctx context.Context) error
	RecordAttempt(ctx context.Context, s session.Summary) error
	GetStats(ctx context.Context) (Stats, error)
	Close() error
}

// Stats aggregates attempt history across all difficulties.
type Stats struct {
	Attempts int
	Timeouts int
	Cleared  int
	Records  int
}
