package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"quizdojo/internal/bank"
	"quizdojo/internal/export"
	"quizdojo/internal/grading"
	"quizdojo/internal/leaderboard"
	"quizdojo/internal/session"
	"quizdojo/internal/state"
	"quizdojo/internal/telemetry"
	"quizdojo/internal/ui"
)

type App struct {
	cfg Config

	logger   *clog.Logger
	closeLog func() error
	store    state.Store
	source   bank.Source
	engine   *session.Engine
	view     ui.View

	mu      sync.Mutex
	bank    bank.Bank
	bankErr error
	pending *leaderboard.Record
}

var _ ui.Controller = (*App)(nil)

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, closeLog, err := telemetry.NewLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		_ = closeLog()
		return nil, err
	}

	view := ui.New(ui.Options{
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
		ASCIIOnly:    cfg.UI.ASCIIOnly,
	})

	a := &App{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		store:    store,
		source:   bank.NewLoader(),
		view:     view,
	}
	a.engine = session.New(session.Options{
		OnTick:   func(remaining int) { a.view.SetRemaining(remaining) },
		OnFinish: a.finishRun,
	})
	a.loadBank(context.Background())
	view.SetController(a)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", "bank", a.cfg.BankPath, "budget_sec", a.cfg.Quiz.TimeBudgetSec)
	a.refreshStartState(ctx)
	a.view.SetScreen(ui.ScreenStart)
	return a.view.Run()
}

func (a *App) Close() {
	a.engine.Quit()
	_ = a.store.Close()
	_ = a.closeLog()
}

func (a *App) loadBank(ctx context.Context) {
	b, err := a.source.Load(ctx, a.cfg.BankPath)
	a.mu.Lock()
	a.bank = b
	a.bankErr = err
	a.mu.Unlock()
	if err != nil {
		a.logger.Error("bank.load_failed", "path", a.cfg.BankPath, "error", err.Error())
		a.view.SetSetupError("Question bank unavailable", err.Error())
		return
	}
	counts := b.Counts()
	a.logger.Info("bank.loaded",
		"total", len(b.Questions),
		"easy", counts[bank.DifficultyEasy],
		"hard", counts[bank.DifficultyHard],
		"expert", counts[bank.DifficultyExpert],
	)
}

func (a *App) refreshStartState(ctx context.Context) {
	a.mu.Lock()
	b := a.bank
	bankErr := a.bankErr
	a.mu.Unlock()

	st := ui.StartState{}
	counts := b.Counts()
	for _, d := range bank.Difficulties {
		st.Tiers = append(st.Tiers, ui.TierRow{Difficulty: string(d), Available: counts[d]})
	}
	if bankErr != nil {
		st.BankError = bankErr.Error()
	}
	if stats, err := a.store.GetStats(ctx); err == nil {
		st.Attempts = stats.Attempts
		st.Cleared = stats.Cleared
	} else {
		a.logger.Error("stats.load_failed", "error", err.Error())
	}
	a.view.SetStartState(st)
}

// OnStartQuiz begins a run at the chosen tier. Failure to draw keeps
// the user on the start screen with an explanation.
func (a *App) OnStartQuiz(difficulty string) {
	d, err := bank.ParseDifficulty(difficulty)
	if err != nil {
		a.view.FlashStatus(err.Error())
		return
	}
	a.mu.Lock()
	pool := a.bank.Questions
	a.mu.Unlock()

	err = a.engine.Start(pool, session.Params{
		Difficulty:    d,
		Count:         a.cfg.Quiz.QuestionCount,
		TimeBudgetSec: a.cfg.Quiz.TimeBudgetSec,
	})
	if err != nil {
		if errors.Is(err, session.ErrNoQuestions) {
			a.view.FlashStatus(fmt.Sprintf("no %s questions in the bank", d))
		} else {
			a.logger.Error("quiz.start_failed", "difficulty", string(d), "error", err.Error())
			a.view.FlashStatus("could not start the quiz")
		}
		return
	}
	a.logger.Info("quiz.started", "difficulty", string(d))
	a.view.SetFeedback(ui.FeedbackState{})
	a.pushQuizState()
	a.view.SetScreen(ui.ScreenQuiz)
}

func (a *App) OnSelectChoice(choice int) {
	snap := a.engine.Snapshot()
	if snap.Phase != session.PhaseRunning {
		return
	}
	if choice < 0 || choice >= len(snap.Question.Choices) {
		return
	}
	if err := a.engine.RecordAnswer(snap.Index, grading.ChoiceAnswer(choice)); err != nil {
		a.logger.Error("quiz.record_failed", "error", err.Error())
		return
	}
	a.pushQuizState()
}

func (a *App) OnAnswerInput(text string) {
	snap := a.engine.Snapshot()
	if snap.Phase != session.PhaseRunning {
		return
	}
	if err := a.engine.RecordAnswer(snap.Index, grading.TextAnswer(text)); err != nil {
		a.logger.Error("quiz.record_failed", "error", err.Error())
	}
}

// OnAdvance grades the displayed question for the feedback popup, then
// moves forward. The last question's advance submits the run.
func (a *App) OnAdvance() {
	snap := a.engine.Snapshot()
	if snap.Phase != session.PhaseRunning {
		return
	}
	correct, close := a.engine.CurrentCorrect()
	a.view.SetFeedback(ui.FeedbackState{Visible: true, Correct: correct, Close: close})
	if err := a.engine.Advance(); err != nil {
		a.logger.Error("quiz.advance_failed", "error", err.Error())
		return
	}
	if a.engine.Snapshot().Phase == session.PhaseRunning {
		a.pushQuizState()
	}
}

// OnQuitQuiz abandons the run. Nothing is recorded.
func (a *App) OnQuitQuiz() {
	a.engine.Quit()
	a.logger.Info("quiz.quit")
	a.view.SetFeedback(ui.FeedbackState{})
	a.refreshStartState(context.Background())
	a.view.SetScreen(ui.ScreenStart)
}

// finishRun handles both completion paths: manual submission and
// timeout. The attempt is always logged; leaderboard qualification is
// checked provisionally here and revalidated at save time.
func (a *App) finishRun(sum session.Summary) {
	ctx := context.Background()
	a.logger.Info("quiz.finished",
		"difficulty", string(sum.Difficulty),
		"score", sum.Correct,
		"total", sum.Total,
		"elapsed_sec", sum.ElapsedSec,
		"by_timeout", sum.ByTimeout,
	)
	if err := a.store.RecordAttempt(ctx, sum); err != nil {
		a.logger.Error("attempt.record_failed", "error", err.Error())
	}

	res := ui.ResultState{
		Difficulty: string(sum.Difficulty),
		Correct:    sum.Correct,
		Total:      sum.Total,
		ElapsedSec: sum.ElapsedSec,
		ByTimeout:  sum.ByTimeout,
		Cleared:    string(sum.Cleared),
	}

	a.clearPending()

	// A timed-out run never enters the leaderboard.
	if !sum.ByTimeout {
		elapsed := sum.ElapsedSec
		candidate := &leaderboard.Record{
			Timestamp:  leaderboard.NewTimestamp(time.Now()),
			Difficulty: sum.Difficulty,
			Score:      sum.Correct,
			Total:      sum.Total,
			ElapsedSec: &elapsed,
			Cleared:    sum.Cleared,
		}
		records, err := a.store.LoadRecords(ctx)
		if err != nil {
			a.logger.Error("records.load_failed", "error", err.Error())
		} else if leaderboard.Qualifies(records, candidate, a.cfg.Quiz.TopN) {
			a.mu.Lock()
			a.pending = candidate
			a.mu.Unlock()
			res.AskIdentity = true
		}
	}

	a.view.SetResult(res)
	a.view.SetScreen(ui.ScreenResult)
}

// OnSubmitIdentity saves the pending record if it still qualifies
// against the freshly loaded board. A displaced score is discarded with
// an explanation rather than saved.
func (a *App) OnSubmitIdentity(identity ui.Identity) {
	name := strings.TrimSpace(identity.Name)
	studentID := strings.TrimSpace(identity.StudentID)
	department := strings.TrimSpace(identity.Department)
	phone := strings.TrimSpace(identity.Phone)
	if name == "" || studentID == "" || department == "" || phone == "" {
		a.view.FlashStatus("all fields are required")
		return
	}

	a.mu.Lock()
	candidate := a.pending
	a.mu.Unlock()
	if candidate == nil {
		return
	}

	ctx := context.Background()
	records, err := a.store.LoadRecords(ctx)
	if err != nil {
		a.logger.Error("records.load_failed", "error", err.Error())
		a.view.FlashStatus("could not save the record")
		return
	}
	if !leaderboard.Qualifies(records, candidate, a.cfg.Quiz.TopN) {
		a.logger.Info("record.displaced", "score", candidate.Score)
		a.clearPending()
		a.view.FlashStatus("your score was displaced before saving")
		a.showLeaderboard(ctx)
		return
	}

	candidate.Name = name
	candidate.StudentID = studentID
	candidate.Department = department
	candidate.Phone = phone
	if err := a.store.AppendRecord(ctx, candidate); err != nil {
		a.logger.Error("record.append_failed", "error", err.Error())
		a.view.FlashStatus("could not save the record")
		return
	}
	a.logger.Info("record.saved", "id", candidate.ID, "name", name, "score", candidate.Score)
	a.clearPending()
	a.showLeaderboard(ctx)
}

func (a *App) OnSkipIdentity() {
	a.clearPending()
	a.refreshStartState(context.Background())
	a.view.SetScreen(ui.ScreenStart)
}

func (a *App) clearPending() {
	a.mu.Lock()
	a.pending = nil
	a.mu.Unlock()
}

func (a *App) OnOpenLeaderboard() {
	a.showLeaderboard(context.Background())
}

func (a *App) showLeaderboard(ctx context.Context) {
	records, err := a.store.LoadRecords(ctx)
	if err != nil {
		a.logger.Error("records.load_failed", "error", err.Error())
		a.view.FlashStatus("could not load the leaderboard")
		return
	}
	st := ui.LeaderboardState{}
	for _, d := range bank.Difficulties {
		board := ui.Board{Difficulty: string(d)}
		for i, rec := range leaderboard.TopN(records, d, a.cfg.Quiz.TopN) {
			elapsed := ""
			if rec.ElapsedSec != nil {
				elapsed = fmt.Sprintf("%d:%02d", *rec.ElapsedSec/60, *rec.ElapsedSec%60)
			}
			board.Rows = append(board.Rows, ui.Row{
				Rank:      i + 1,
				Name:      rec.Name,
				Score:     rec.Score,
				Total:     rec.Total,
				Elapsed:   elapsed,
				Timestamp: rec.Timestamp,
				Cleared:   rec.Cleared != "",
			})
		}
		st.Boards = append(st.Boards, board)
	}
	a.view.SetLeaderboard(st)
	a.view.SetScreen(ui.ScreenLeaderboard)
}

func (a *App) OnBackToStart() {
	a.refreshStartState(context.Background())
	a.view.SetScreen(ui.ScreenStart)
}

func (a *App) OnExportCSV() {
	a.exportRecords("csv")
}

func (a *App) OnExportJSON() {
	a.exportRecords("json")
}

func (a *App) exportRecords(format string) {
	ctx := context.Background()
	records, err := a.store.LoadRecords(ctx)
	if err != nil {
		a.logger.Error("records.load_failed", "error", err.Error())
		a.view.FlashStatus("could not load records for export")
		return
	}
	var path string
	switch format {
	case "json":
		path, err = export.WriteJSON(a.cfg.ExportDir, records, time.Now())
	default:
		path, err = export.WriteCSV(a.cfg.ExportDir, records, time.Now())
	}
	if err != nil {
		a.logger.Error("export.failed", "format", format, "error", err.Error())
		a.view.FlashStatus("export failed")
		return
	}
	a.logger.Info("export.written", "path", path, "rows", len(records))
	a.view.FlashStatus("exported " + path)
}

// OnClearRecords wipes the board. The view confirms before calling.
func (a *App) OnClearRecords() {
	ctx := context.Background()
	if err := a.store.ClearRecords(ctx); err != nil {
		a.logger.Error("records.clear_failed", "error", err.Error())
		a.view.FlashStatus("could not clear the leaderboard")
		return
	}
	a.logger.Info("records.cleared")
	a.view.FlashStatus("leaderboard cleared")
	a.showLeaderboard(ctx)
}

func (a *App) OnReloadBank() {
	a.loadBank(context.Background())
	a.refreshStartState(context.Background())
	a.mu.Lock()
	ok := a.bankErr == nil
	a.mu.Unlock()
	if ok {
		a.view.FlashStatus("question bank reloaded")
	}
}

func (a *App) OnQuit() {
	a.engine.Quit()
	a.view.Stop()
}

func (a *App) pushQuizState() {
	snap := a.engine.Snapshot()
	if snap.Phase != session.PhaseRunning {
		return
	}
	q := snap.Question
	st := ui.QuizState{
		Difficulty:   string(snap.Difficulty),
		Index:        snap.Index,
		Total:        snap.Total,
		Prompt:       q.Prompt,
		Choices:      q.Choices,
		Selected:     -1,
		IsText:       q.Type == bank.TypeShortAnswer,
		RemainingSec: snap.RemainingSec,
		BudgetSec:    a.cfg.Quiz.TimeBudgetSec,
		LiveCorrect:  snap.Live.Correct,
	}
	if q.Code != nil {
		st.Code = q.Code.Text
		st.CodeLanguage = q.Code.Lang
	}
	switch snap.Answer.Kind {
	case grading.AnswerChoice:
		st.Selected = snap.Answer.Choice
	case grading.AnswerText:
		st.TextAnswer = snap.Answer.Text
	}
	a.view.SetQuizState(st)
}
