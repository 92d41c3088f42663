package leaderboard

import (
	"time"

	"quizdojo/internal/bank"
)

// Record is one persisted leaderboard row. Records are never mutated
// after creation; ranking is always computed on read.
type Record struct {
	ID        int64  `json:"-"`
	Timestamp string `json:"timestamp"`

	// Identity fields are opaque free text captured from the winner form.
	Name       string `json:"name"`
	StudentID  string `json:"studentId"`
	Department string `json:"department"`
	Phone      string `json:"phone"`

	Difficulty bank.Difficulty `json:"difficulty"`
	Score      int             `json:"score"`
	Total      int             `json:"total"`
	// ElapsedSec is nil on rows that predate elapsed tracking; they rank
	// last among equal scores.
	ElapsedSec *int            `json:"elapsedSec,omitempty"`
	Cleared    bank.Difficulty `json:"clearedDifficulty,omitempty"`
}

// NewTimestamp renders the append time in the stored format. ISO-8601
// UTC, so lexicographic order matches chronological order.
func NewTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
