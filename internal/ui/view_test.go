package ui

import (
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

var _ View = (*Root)(nil)

type mockController struct {
	mu            sync.Mutex
	started       []string
	choices       []int
	advances      int
	quits         int
	quizQuits     int
	clears        int
	submitted     []Identity
	skips         int
	opens         int
	backs         int
	reloads       int
	exportCSVs    int
	exportJSONs   int
	answerInputs  []string
}

func (m *mockController) OnStartQuiz(d string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, d)
}

func (m *mockController) OnSelectChoice(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.choices = append(m.choices, i)
}

func (m *mockController) OnAnswerInput(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answerInputs = append(m.answerInputs, text)
}

func (m *mockController) OnAdvance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances++
}

func (m *mockController) OnQuitQuiz() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizQuits++
}

func (m *mockController) OnSubmitIdentity(id Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, id)
}

func (m *mockController) OnSkipIdentity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skips++
}

func (m *mockController) OnOpenLeaderboard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opens++
}

func (m *mockController) OnBackToStart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backs++
}

func (m *mockController) OnExportCSV() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exportCSVs++
}

func (m *mockController) OnExportJSON() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exportJSONs++
}

func (m *mockController) OnClearRecords() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
}

func (m *mockController) OnReloadBank() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reloads++
}

func (m *mockController) OnQuit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quits++
}

func press(v *Root, code rune, mod tea.KeyMod, text string) {
	_, _ = v.Update(tea.KeyPressMsg{Code: code, Mod: mod, Text: text})
}

// waitFor polls until the condition holds; controller calls arrive on
// their own goroutines.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func newTestView(ctrl *mockController) *Root {
	v := New(Options{MotionLevel: "off"})
	v.SetController(ctrl)
	return v
}

func TestCtrlQQuitsFromAnyScreen(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetScreen(ScreenQuiz)

	press(v, 'q', tea.ModCtrl, "")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return ctrl.quits == 1
	})
}

func TestEnterOnStartStartsSelectedTier(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetStartState(StartState{Tiers: []TierRow{
		{Difficulty: "Easy", Available: 20},
		{Difficulty: "Hard", Available: 18},
		{Difficulty: "Expert", Available: 15},
	}})

	press(v, tea.KeyDown, 0, "")
	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return len(ctrl.started) == 1 && ctrl.started[0] == "Hard"
	})
}

func TestEscInQuizOpensConfirmWithoutQuitting(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetScreen(ScreenQuiz)
	v.SetQuizState(QuizState{Choices: []string{"a", "b"}, Selected: -1, Total: 1})

	press(v, tea.KeyEscape, 0, "")
	if !v.quitConfirmOpen {
		t.Fatalf("expected the quit confirm to open")
	}

	// Default answer is No: enter keeps the quiz running.
	press(v, tea.KeyEnter, 0, "")
	if v.quitConfirmOpen {
		t.Fatalf("confirm should close on enter")
	}
	time.Sleep(30 * time.Millisecond)
	ctrl.mu.Lock()
	quizQuits := ctrl.quizQuits
	ctrl.mu.Unlock()
	if quizQuits != 0 {
		t.Fatalf("declining the confirm must not quit the quiz")
	}
}

func TestConfirmYesQuitsQuiz(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetScreen(ScreenQuiz)

	press(v, tea.KeyEscape, 0, "")
	press(v, tea.KeyLeft, 0, "")
	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return ctrl.quizQuits == 1
	})
}

func TestNumberKeySelectsChoice(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetScreen(ScreenQuiz)
	v.SetQuizState(QuizState{Choices: []string{"a", "b", "c"}, Selected: -1, Total: 1})

	press(v, '2', 0, "2")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return len(ctrl.choices) == 1 && ctrl.choices[0] == 1
	})
}

func TestEnterAdvancesQuiz(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetScreen(ScreenQuiz)
	v.SetQuizState(QuizState{Choices: []string{"a", "b"}, Selected: 0, Total: 1})

	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return ctrl.advances == 1
	})
}

func TestIdentityFormSubmitsOnFinalEnter(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetResult(ResultState{AskIdentity: true, Correct: 15, Total: 15})
	v.SetScreen(ScreenResult)

	values := []string{"Ada", "s-100", "CS", "555-0100"}
	for i, val := range values {
		v.identityInputs[i].SetValue(val)
	}
	v.focusIdentity(len(values) - 1)

	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return len(ctrl.submitted) == 1
	})
	ctrl.mu.Lock()
	got := ctrl.submitted[0]
	ctrl.mu.Unlock()
	if got.Name != "Ada" || got.StudentID != "s-100" || got.Department != "CS" || got.Phone != "555-0100" {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestEscSkipsIdentityForm(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetResult(ResultState{AskIdentity: true})
	v.SetScreen(ScreenResult)

	press(v, tea.KeyEscape, 0, "")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return ctrl.skips == 1
	})
}

func TestLeaderboardClearRequiresConfirm(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetScreen(ScreenLeaderboard)

	press(v, 'x', 0, "x")
	if !v.clearConfirmOpen {
		t.Fatalf("expected the clear confirm to open")
	}
	press(v, tea.KeyLeft, 0, "")
	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return ctrl.clears == 1
	})
}

func TestTextAnswerKeystrokesReachController(t *testing.T) {
	ctrl := &mockController{}
	v := newTestView(ctrl)
	v.SetQuizState(QuizState{IsText: true, Total: 1})
	v.SetScreen(ScreenQuiz)

	press(v, 'l', 0, "l")
	press(v, 's', 0, "s")

	waitFor(t, func() bool {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		return len(ctrl.answerInputs) >= 2 && ctrl.answerInputs[len(ctrl.answerInputs)-1] == "ls"
	})
}

func TestMmssFormatsRemaining(t *testing.T) {
	cases := map[int]string{0: "00:00", 59: "00:59", 61: "01:01", 300: "05:00", -5: "00:00"}
	for in, want := range cases {
		if got := mmss(in); got != want {
			t.Fatalf("mmss(%d) = %q, want %q", in, got, want)
		}
	}
}
