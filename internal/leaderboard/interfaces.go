package leaderboard

import "context"

// Store is the persistence boundary. Append-only from the quiz flow's
// perspective; ClearRecords is an administrative action.
type Store interface {
	LoadRecords(ctx context.Context) ([]*Record, error)
	AppendRecord(ctx context.Context, rec *Record) error
	ClearRecords(ctx context.Context) error
}
