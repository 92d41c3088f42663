package session

import (
	"errors"

	"quizdojo/internal/bank"
	"quizdojo/internal/grading"
)

var (
	// ErrNoQuestions means the pool holds nothing for the requested
	// difficulty. User-correctable: fix the bank or pick another tier.
	ErrNoQuestions = errors.New("no questions available")
	// ErrInvalidState marks an operation invoked outside its legal phase.
	// Treated as a UI bug: logged and ignored, never fatal.
	ErrInvalidState = errors.New("invalid session state")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Params configures one quiz attempt. Immutable for the run.
type Params struct {
	Difficulty    bank.Difficulty
	Count         int
	TimeBudgetSec int
}

// Summary is produced exactly once per terminated run, through either
// the timeout path or manual submission, never both.
type Summary struct {
	AttemptID  string
	Difficulty bank.Difficulty
	Correct    int
	Total      int
	ElapsedSec int
	ByTimeout  bool
	// Cleared holds the difficulty name on a perfect score, else "".
	Cleared bank.Difficulty
}

// Snapshot is the read side exposed to the rendering layer.
type Snapshot struct {
	Phase        Phase
	AttemptID    string
	Difficulty   bank.Difficulty
	Index        int
	Total        int
	Question     bank.Question
	Answer       grading.Answer
	RemainingSec int
	Live         grading.Score
}
