package leaderboard

import (
	"math"
	"sort"

	"quizdojo/internal/bank"
)

// Rank filters to one difficulty and orders by score descending, then
// elapsed ascending (missing elapsed treated as worst), then timestamp
// ascending as the final deterministic tie-break. The input slice is
// never reordered; ranking works on a copy.
func Rank(records []*Record, d bank.Difficulty) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r != nil && r.Difficulty == d {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		ae, be := elapsedKey(a), elapsedKey(b)
		if ae != be {
			return ae < be
		}
		return a.Timestamp < b.Timestamp
	})
	return out
}

// TopN returns the first n ranked records for the difficulty.
func TopN(records []*Record, d bank.Difficulty, n int) []*Record {
	ranked := Rank(records, d)
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Qualifies appends the candidate to the list and reports whether it
// lands inside the Top-N window for its difficulty. Identity is by
// pointer, so a candidate tying an existing row on every key does not
// qualify by mistaken equality. Callers must pass the current persisted
// list, not a stale snapshot.
func Qualifies(records []*Record, candidate *Record, n int) bool {
	if candidate == nil {
		return false
	}
	all := make([]*Record, 0, len(records)+1)
	all = append(all, records...)
	all = append(all, candidate)
	for _, r := range TopN(all, candidate.Difficulty, n) {
		if r == candidate {
			return true
		}
	}
	return false
}

func elapsedKey(r *Record) int {
	if r.ElapsedSec == nil {
		return math.MaxInt
	}
	return *r.ElapsedSec
}
