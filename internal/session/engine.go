package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizdojo/internal/bank"
	"quizdojo/internal/grading"
)

// Options wires the engine's collaborators. Rand defaults to a
// time-seeded source; tests inject a fixed seed and drive Tick directly
// with NoCountdown set.
type Options struct {
	Rand        *rand.Rand
	OnTick      func(remainingSec int)
	OnFinish    func(Summary)
	NoCountdown bool
}

// Engine owns the lifecycle of one quiz attempt. A single instance
// lives for the whole app; Start resets it for each new run. The
// countdown goroutine is the only autonomous activity and every
// transition it makes goes through Tick under the engine mutex, so the
// finalize-once guarantee reduces to the phase check.
type Engine struct {
	grader      *grading.Grader
	rng         *rand.Rand
	onTick      func(int)
	onFinish    func(Summary)
	noCountdown bool

	mu           sync.Mutex
	phase        Phase
	attemptID    string
	difficulty   bank.Difficulty
	questions    []bank.Question
	answers      []grading.Answer
	index        int
	budgetSec    int
	remainingSec int
	stopTick     chan struct{}
}

func New(opts Options) *Engine {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		grader:      grading.NewGrader(),
		rng:         rng,
		onTick:      opts.OnTick,
		onFinish:    opts.OnFinish,
		noCountdown: opts.NoCountdown,
	}
}

// Start draws the question set and begins the countdown. The pool is
// filtered to the difficulty, shuffled, truncated to min(count,
// available), then shuffled once more so the final order does not
// correlate with pool order.
func (e *Engine) Start(pool []bank.Question, p Params) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseRunning {
		return fmt.Errorf("start while running: %w", ErrInvalidState)
	}

	filtered := make([]bank.Question, 0, len(pool))
	for _, q := range pool {
		if q.Difficulty == p.Difficulty {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) == 0 {
		return fmt.Errorf("difficulty %s: %w", p.Difficulty, ErrNoQuestions)
	}

	e.shuffle(filtered)
	count := p.Count
	if count <= 0 || count > len(filtered) {
		count = len(filtered)
	}
	picked := append([]bank.Question(nil), filtered[:count]...)
	e.shuffle(picked)

	e.stopCountdownLocked()
	e.phase = PhaseRunning
	e.attemptID = uuid.NewString()
	e.difficulty = p.Difficulty
	e.questions = picked
	e.answers = make([]grading.Answer, len(picked))
	e.index = 0
	e.budgetSec = p.TimeBudgetSec
	e.remainingSec = p.TimeBudgetSec
	if !e.noCountdown {
		e.startCountdownLocked()
	}
	return nil
}

// RecordAnswer overwrites the slot at index. Only the displayed question
// may be answered; anything else is a UI bug surfaced as ErrInvalidState.
func (e *Engine) RecordAnswer(index int, ans grading.Answer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseRunning {
		return fmt.Errorf("record answer in %s: %w", e.phase, ErrInvalidState)
	}
	if index != e.index {
		return fmt.Errorf("record answer for question %d while on %d: %w", index, e.index, ErrInvalidState)
	}
	e.answers[index] = ans
	return nil
}

// Advance moves forward one question, or submits when already on the
// last one. Forward-only: there is no backward navigation once a run is
// in progress.
func (e *Engine) Advance() error {
	e.mu.Lock()
	if e.phase != PhaseRunning {
		e.mu.Unlock()
		return fmt.Errorf("advance in %s: %w", e.phase, ErrInvalidState)
	}
	if e.index < len(e.questions)-1 {
		e.index++
		e.mu.Unlock()
		return nil
	}
	summary := e.finalizeLocked(false)
	cb := e.onFinish
	e.mu.Unlock()
	if cb != nil {
		cb(summary)
	}
	return nil
}

// Quit discards the run from any phase without producing a summary.
// The countdown stops before state is cleared so a dangling timer can
// never mutate a discarded attempt.
func (e *Engine) Quit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopCountdownLocked()
	e.phase = PhaseIdle
	e.attemptID = ""
	e.questions = nil
	e.answers = nil
	e.index = 0
	e.remainingSec = 0
}

// Tick is the countdown transition: one elapsed second. The ticker
// goroutine calls it once per second; tests call it directly. Outside
// PhaseRunning it is a no-op, which is what makes a late tick racing a
// manual submission harmless.
func (e *Engine) Tick() {
	e.mu.Lock()
	if e.phase != PhaseRunning {
		e.mu.Unlock()
		return
	}
	e.remainingSec--
	if e.remainingSec > 0 {
		n := e.remainingSec
		cb := e.onTick
		e.mu.Unlock()
		if cb != nil {
			cb(n)
		}
		return
	}
	e.remainingSec = 0
	summary := e.finalizeLocked(true)
	tick := e.onTick
	finish := e.onFinish
	e.mu.Unlock()
	if tick != nil {
		tick(0)
	}
	if finish != nil {
		finish(summary)
	}
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		Phase:        e.phase,
		AttemptID:    e.attemptID,
		Difficulty:   e.difficulty,
		Index:        e.index,
		Total:        len(e.questions),
		RemainingSec: e.remainingSec,
		Live:         e.grader.ComputeScore(e.questions, e.answers),
	}
	if e.index < len(e.questions) {
		snap.Question = e.questions[e.index]
		snap.Answer = e.answers[e.index]
	}
	return snap
}

// LiveScore grades the current answer sequence without touching state.
func (e *Engine) LiveScore() grading.Score {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grader.ComputeScore(e.questions, e.answers)
}

// CurrentCorrect reports whether the displayed question's slot grades
// correct right now, plus whether a wrong short answer was close. Feeds
// the per-question popup shown on advance.
func (e *Engine) CurrentCorrect() (correct, close bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseRunning || e.index >= len(e.questions) {
		return false, false
	}
	q := e.questions[e.index]
	ans := e.answers[e.index]
	return e.grader.IsCorrect(q, ans), e.grader.CloseMatch(q, ans)
}

// finalizeLocked is the single path into PhaseFinished. Countdown stops
// first; the summary is built from the frozen answer sequence.
func (e *Engine) finalizeLocked(byTimeout bool) Summary {
	e.stopCountdownLocked()
	score := e.grader.ComputeScore(e.questions, e.answers)
	elapsed := e.budgetSec - e.remainingSec
	if elapsed < 0 {
		elapsed = 0
	}
	summary := Summary{
		AttemptID:  e.attemptID,
		Difficulty: e.difficulty,
		Correct:    score.Correct,
		Total:      score.Total,
		ElapsedSec: elapsed,
		ByTimeout:  byTimeout,
	}
	if score.Total > 0 && score.Correct == score.Total {
		summary.Cleared = e.difficulty
	}
	e.phase = PhaseFinished
	return summary
}

func (e *Engine) startCountdownLocked() {
	stop := make(chan struct{})
	e.stopTick = stop
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.Tick()
			}
		}
	}()
}

// stopCountdownLocked is idempotent: stopping a stopped countdown is a
// no-op.
func (e *Engine) stopCountdownLocked() {
	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
}

func (e *Engine) shuffle(qs []bank.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}
