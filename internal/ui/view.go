package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
)

type applyMsg struct {
	fn func(*Root)
}

type clockMsg time.Time
type animateMsg time.Time

// feedbackHold is how long the per-question verdict popup stays up.
const feedbackHold = 1200 * time.Millisecond

type quizKeyMap struct {
	Navigate    key.Binding
	Select      key.Binding
	Advance     key.Binding
	Leaderboard key.Binding
	Reload      key.Binding
	Export      key.Binding
	ExportJSON  key.Binding
	Clear       key.Binding
	Back        key.Binding
	Quit        key.Binding
}

func (k quizKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Select, k.Advance, k.Back, k.Quit}
}

func (k quizKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Select, k.Advance},
		{k.Leaderboard, k.Export, k.ExportJSON},
		{k.Clear, k.Reload, k.Back, k.Quit},
	}
}

type Root struct {
	theme        Theme
	ascii        bool
	styleVariant string
	motionLevel  string
	ctrl         Controller

	mu      sync.Mutex
	program *tea.Program
	running bool

	screen Screen
	cols   int
	rows   int

	start    StartState
	quiz     QuizState
	feedback FeedbackState
	result   ResultState
	board    LeaderboardState

	setupMsg     string
	setupDetails string
	statusFlash  string

	startIndex  int
	choiceIndex int

	answerInput    textinput.Model
	identityInputs []textinput.Model
	identityFocus  int

	quitConfirmOpen  bool
	clearConfirmOpen bool
	confirmIndex     int

	feedbackShownAt time.Time

	help     help.Model
	keymap   quizKeyMap
	timebar  progress.Model
	markdown *glamour.TermRenderer
	logger   *clog.Logger

	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring
}

type Options struct {
	StyleVariant string
	MotionLevel  string
	ASCIIOnly    bool
}

var identityLabels = []string{"Name", "Student ID", "Department", "Phone"}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "quizdojo-ui", Level: clog.WarnLevel})

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	theme := ThemeForVariant(styleVariant)
	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
	switch motionLevel {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	timebar := progress.New(
		progress.WithWidth(30),
		progress.WithColors(lipgloss.Color("#FF7A8A"), lipgloss.Color("#FFD166"), lipgloss.Color("#6BF0A1")),
		progress.WithScaled(true),
	)
	if motionLevel == "off" {
		timebar.SetSpringOptions(1000.0, 1.0)
	}

	answer := textinput.New()
	answer.Placeholder = "type your answer"
	answer.CharLimit = 200

	inputs := make([]textinput.Model, len(identityLabels))
	for i, label := range identityLabels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 80
		inputs[i] = ti
	}

	r := &Root{
		theme:          theme,
		ascii:          opts.ASCIIOnly,
		styleVariant:   styleVariant,
		motionLevel:    motionLevel,
		screen:         ScreenStart,
		cols:           100,
		rows:           30,
		help:           h,
		timebar:        timebar,
		markdown:       renderer,
		logger:         logger,
		spring:         spring,
		answerInput:    answer,
		identityInputs: inputs,
	}
	r.keymap = quizKeyMap{
		Navigate:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
		Select:      key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "pick")),
		Advance:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Leaderboard: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "leaderboard")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload bank")),
		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		ExportJSON:  key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "export json")),
		Clear:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear board")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
	return r
}

func normalizeStyleVariant(v string) string {
	switch v {
	case "cozy_clean", "retro_terminal":
		return v
	default:
		return "modern_arcade"
	}
}

func normalizeMotionLevel(v string) string {
	switch v {
	case "off", "reduced":
		return v
	default:
		return "full"
	}
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), animateTickCmd())
}

func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case clockMsg:
		return r, clockTickCmd()
	case animateMsg:
		if r.feedback.Visible && time.Since(r.feedbackShownAt) > feedbackHold {
			r.feedback.Visible = false
		}
		target := 0.0
		if r.overlayActive() {
			target = 1.0
		}
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		if r.shouldAnimate(target) || r.feedback.Visible {
			return r, animateTickCmd()
		}
		if target == 0 {
			r.overlayPos = 0
			r.overlayVel = 0
		} else {
			r.overlayPos = 1
			r.overlayVel = 0
		}
		return r, nil
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() tea.View {
	if r.cols < 1 {
		r.cols = 100
	}
	if r.rows < 1 {
		r.rows = 30
	}

	var base string
	switch r.screen {
	case ScreenQuiz:
		base = r.renderQuiz()
	case ScreenResult:
		base = r.renderResult()
	case ScreenLeaderboard:
		base = r.renderLeaderboard()
	default:
		base = r.renderStart()
	}

	if overlay := r.renderOverlay(); overlay != "" {
		base = r.composeOverlay(base, overlay)
	}
	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		m.screen = screen
		m.quitConfirmOpen = false
		m.clearConfirmOpen = false
		switch screen {
		case ScreenQuiz:
			m.syncAnswerInput()
		case ScreenResult:
			m.identityFocus = 0
			for i := range m.identityInputs {
				m.identityInputs[i].SetValue("")
				m.identityInputs[i].Blur()
			}
			if m.result.AskIdentity && len(m.identityInputs) > 0 {
				m.identityInputs[0].Focus()
			}
		}
	})
}

func (r *Root) SetStartState(s StartState) {
	r.apply(func(m *Root) {
		m.start = s
		if m.startIndex >= len(s.Tiers) {
			m.startIndex = 0
		}
	})
}

func (r *Root) SetQuizState(s QuizState) {
	r.apply(func(m *Root) {
		m.quiz = s
		m.choiceIndex = s.Selected
		if m.choiceIndex < 0 {
			m.choiceIndex = 0
		}
		if m.screen == ScreenQuiz {
			m.syncAnswerInput()
		}
	})
}

func (r *Root) SetRemaining(sec int) {
	r.apply(func(m *Root) {
		m.quiz.RemainingSec = sec
	})
}

func (r *Root) SetFeedback(s FeedbackState) {
	r.apply(func(m *Root) {
		m.feedback = s
		if s.Visible {
			m.feedbackShownAt = time.Now()
		}
	})
}

func (r *Root) SetResult(s ResultState) {
	r.apply(func(m *Root) {
		m.result = s
	})
}

func (r *Root) SetLeaderboard(s LeaderboardState) {
	r.apply(func(m *Root) {
		m.board = s
	})
}

func (r *Root) SetSetupError(msg, details string) {
	r.apply(func(m *Root) {
		m.setupMsg = msg
		m.setupDetails = details
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) syncAnswerInput() {
	if r.quiz.IsText {
		r.answerInput.SetValue(r.quiz.TextAnswer)
		r.answerInput.Focus()
	} else {
		r.answerInput.Blur()
	}
}

func (r *Root) overlayActive() bool {
	return r.quitConfirmOpen || r.clearConfirmOpen || r.feedback.Visible
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keymap.Quit) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}

	if r.quitConfirmOpen || r.clearConfirmOpen {
		return r.handleConfirmKey(msg)
	}

	switch r.screen {
	case ScreenQuiz:
		return r.handleQuizKey(msg)
	case ScreenResult:
		return r.handleResultKey(msg)
	case ScreenLeaderboard:
		return r.handleLeaderboardKey(msg)
	default:
		return r.handleStartKey(msg)
	}
}

func (r *Root) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "right", "tab", "h", "l"))):
		r.confirmIndex = 1 - r.confirmIndex
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		confirmed := r.confirmIndex == 0
		if r.quitConfirmOpen {
			r.quitConfirmOpen = false
			if confirmed {
				r.dispatchController(func(c Controller) { c.OnQuitQuiz() })
			}
		} else {
			r.clearConfirmOpen = false
			if confirmed {
				r.dispatchController(func(c Controller) { c.OnClearRecords() })
			}
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		r.quitConfirmOpen = false
		r.clearConfirmOpen = false
	}
	return r, r.animateIfNeeded()
}

func (r *Root) handleStartKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if r.startIndex > 0 {
			r.startIndex--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if r.startIndex < len(r.start.Tiers)-1 {
			r.startIndex++
		}
	case key.Matches(msg, r.keymap.Advance):
		if r.startIndex < len(r.start.Tiers) {
			tier := r.start.Tiers[r.startIndex].Difficulty
			r.statusFlash = ""
			r.dispatchController(func(c Controller) { c.OnStartQuiz(tier) })
		}
	case key.Matches(msg, r.keymap.Leaderboard):
		r.dispatchController(func(c Controller) { c.OnOpenLeaderboard() })
	case key.Matches(msg, r.keymap.Reload):
		r.dispatchController(func(c Controller) { c.OnReloadBank() })
	case key.Matches(msg, key.NewBinding(key.WithKeys("q", "esc"))):
		r.dispatchController(func(c Controller) { c.OnQuit() })
	}
	return r, nil
}

func (r *Root) handleQuizKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keymap.Back) {
		r.quitConfirmOpen = true
		r.confirmIndex = 1
		return r, r.animateIfNeeded()
	}
	if key.Matches(msg, r.keymap.Advance) {
		if r.quiz.IsText {
			text := r.answerInput.Value()
			r.dispatchController(func(c Controller) {
				c.OnAnswerInput(text)
				c.OnAdvance()
			})
		} else {
			r.dispatchController(func(c Controller) { c.OnAdvance() })
		}
		return r, nil
	}

	if r.quiz.IsText {
		var cmd tea.Cmd
		r.answerInput, cmd = r.answerInput.Update(msg)
		text := r.answerInput.Value()
		r.quiz.TextAnswer = text
		r.dispatchController(func(c Controller) { c.OnAnswerInput(text) })
		return r, cmd
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if r.choiceIndex > 0 {
			r.choiceIndex--
			idx := r.choiceIndex
			r.dispatchController(func(c Controller) { c.OnSelectChoice(idx) })
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if r.choiceIndex < len(r.quiz.Choices)-1 {
			r.choiceIndex++
			idx := r.choiceIndex
			r.dispatchController(func(c Controller) { c.OnSelectChoice(idx) })
		}
	case key.Matches(msg, r.keymap.Select):
		idx := int(msg.Code - '1')
		if idx >= 0 && idx < len(r.quiz.Choices) {
			r.choiceIndex = idx
			r.dispatchController(func(c Controller) { c.OnSelectChoice(idx) })
		}
	}
	return r, nil
}

func (r *Root) handleResultKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if !r.result.AskIdentity {
		switch {
		case key.Matches(msg, r.keymap.Leaderboard):
			r.dispatchController(func(c Controller) { c.OnOpenLeaderboard() })
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter", "esc"))):
			r.dispatchController(func(c Controller) { c.OnBackToStart() })
		}
		return r, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		r.dispatchController(func(c Controller) { c.OnSkipIdentity() })
		return r, nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "down"))):
		r.focusIdentity(r.identityFocus + 1)
		return r, nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
		r.focusIdentity(r.identityFocus - 1)
		return r, nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if r.identityFocus < len(r.identityInputs)-1 {
			r.focusIdentity(r.identityFocus + 1)
			return r, nil
		}
		identity := Identity{
			Name:       r.identityInputs[0].Value(),
			StudentID:  r.identityInputs[1].Value(),
			Department: r.identityInputs[2].Value(),
			Phone:      r.identityInputs[3].Value(),
		}
		r.dispatchController(func(c Controller) { c.OnSubmitIdentity(identity) })
		return r, nil
	}

	var cmd tea.Cmd
	r.identityInputs[r.identityFocus], cmd = r.identityInputs[r.identityFocus].Update(msg)
	return r, cmd
}

func (r *Root) focusIdentity(idx int) {
	if idx < 0 {
		idx = len(r.identityInputs) - 1
	}
	if idx >= len(r.identityInputs) {
		idx = 0
	}
	r.identityInputs[r.identityFocus].Blur()
	r.identityFocus = idx
	r.identityInputs[idx].Focus()
}

func (r *Root) handleLeaderboardKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keymap.Export):
		r.dispatchController(func(c Controller) { c.OnExportCSV() })
	case key.Matches(msg, r.keymap.ExportJSON):
		r.dispatchController(func(c Controller) { c.OnExportJSON() })
	case key.Matches(msg, r.keymap.Clear):
		r.clearConfirmOpen = true
		r.confirmIndex = 1
		return r, r.animateIfNeeded()
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "q"))):
		r.dispatchController(func(c Controller) { c.OnBackToStart() })
	}
	return r, nil
}

func (r *Root) renderStart() string {
	var b strings.Builder
	b.WriteString(r.theme.Header.Width(r.cols).Render("quizdojo"))
	b.WriteString("\n\n")

	if r.setupMsg != "" {
		b.WriteString(r.theme.Wrong.Render(r.setupMsg))
		b.WriteString("\n")
		if r.setupDetails != "" {
			b.WriteString(r.theme.Muted.Render(r.setupDetails))
			b.WriteString("\n")
		}
		b.WriteString(r.theme.Muted.Render("press r to retry loading the bank"))
		b.WriteString("\n\n")
	}

	b.WriteString(r.theme.PanelTitle.Render("Pick a difficulty"))
	b.WriteString("\n")
	for i, tier := range r.start.Tiers {
		line := fmt.Sprintf("  %-8s %d questions", tier.Difficulty, tier.Available)
		if i == r.startIndex {
			line = r.theme.Selected.Render("> " + strings.TrimSpace(line) + " ")
		} else {
			line = r.theme.PanelBody.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.theme.Muted.Render(fmt.Sprintf("attempts: %d  cleared runs: %d", r.start.Attempts, r.start.Cleared)))
	b.WriteString("\n\n")
	b.WriteString(r.theme.Muted.Render("enter start  ·  l leaderboard  ·  r reload  ·  q quit"))
	b.WriteString(r.statusLine())
	return b.String()
}

func (r *Root) renderQuiz() string {
	var b strings.Builder
	header := fmt.Sprintf("%s · question %d/%d · score %d", r.quiz.Difficulty, r.quiz.Index+1, r.quiz.Total, r.quiz.LiveCorrect)
	b.WriteString(r.theme.Header.Width(r.cols).Render(header))
	b.WriteString("\n")
	b.WriteString(r.renderTimer())
	b.WriteString("\n\n")

	b.WriteString(r.renderPrompt())
	b.WriteString("\n")

	if r.quiz.IsText {
		b.WriteString(r.answerInput.View())
		b.WriteString("\n")
	} else {
		for i, choice := range r.quiz.Choices {
			marker := "  "
			if i == r.quiz.Selected {
				marker = r.theme.Accent.Render("● ")
			}
			line := fmt.Sprintf("%s%d. %s", marker, i+1, choice)
			if i == r.choiceIndex {
				line = r.theme.Selected.Render(line)
			} else {
				line = r.theme.PanelBody.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(r.help.View(r.keymap))
	b.WriteString(r.statusLine())
	return b.String()
}

func (r *Root) renderPrompt() string {
	md := r.quiz.Prompt
	if r.quiz.Code != "" {
		md += fmt.Sprintf("\n\n```%s\n%s\n```", r.quiz.CodeLanguage, r.quiz.Code)
	}
	if r.markdown != nil {
		out, err := r.markdown.Render(md)
		if err == nil {
			return out
		}
		r.logger.Debug("markdown render failed", "error", err)
	}
	return r.theme.PanelBody.Render(md) + "\n"
}

func (r *Root) renderTimer() string {
	budget := r.quiz.BudgetSec
	if budget <= 0 {
		budget = 1
	}
	frac := float64(r.quiz.RemainingSec) / float64(budget)
	style := r.theme.Timer
	if r.quiz.RemainingSec <= 30 {
		style = r.theme.TimerLow
	}
	return fmt.Sprintf("%s %s", style.Render(mmss(r.quiz.RemainingSec)), r.timebar.ViewAs(frac))
}

func (r *Root) renderResult() string {
	var b strings.Builder
	b.WriteString(r.theme.Header.Width(r.cols).Render("results"))
	b.WriteString("\n\n")

	verdict := fmt.Sprintf("%d / %d on %s", r.result.Correct, r.result.Total, r.result.Difficulty)
	b.WriteString(r.theme.PanelTitle.Render(verdict))
	b.WriteString("\n")
	b.WriteString(r.theme.Muted.Render("time used: " + mmss(r.result.ElapsedSec)))
	b.WriteString("\n")
	if r.result.ByTimeout {
		b.WriteString(r.theme.Wrong.Render("time expired"))
		b.WriteString("\n")
	}
	if r.result.Cleared != "" {
		b.WriteString(r.theme.Correct.Render(fmt.Sprintf("perfect score! %s cleared", r.result.Cleared)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if r.result.AskIdentity {
		b.WriteString(r.theme.PanelTitle.Render("You made the leaderboard! Enter your details:"))
		b.WriteString("\n")
		for i := range r.identityInputs {
			label := fmt.Sprintf("%-12s", identityLabels[i])
			if i == r.identityFocus {
				b.WriteString(r.theme.Accent.Render(label))
			} else {
				b.WriteString(r.theme.Muted.Render(label))
			}
			b.WriteString(r.identityInputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(r.theme.Muted.Render("tab next field  ·  enter submit  ·  esc skip"))
	} else {
		b.WriteString(r.theme.Muted.Render("l leaderboard  ·  enter back to start"))
	}
	b.WriteString(r.statusLine())
	return b.String()
}

func (r *Root) renderLeaderboard() string {
	var b strings.Builder
	b.WriteString(r.theme.Header.Width(r.cols).Render("leaderboard"))
	b.WriteString("\n\n")

	for _, board := range r.board.Boards {
		b.WriteString(r.theme.PanelTitle.Render(board.Difficulty))
		b.WriteString("\n")
		if len(board.Rows) == 0 {
			b.WriteString(r.theme.Muted.Render("  no records yet"))
			b.WriteString("\n")
		}
		for _, row := range board.Rows {
			mark := " "
			if row.Cleared {
				mark = r.theme.Correct.Render("★")
			}
			elapsed := row.Elapsed
			if elapsed == "" {
				elapsed = "--:--"
			}
			line := fmt.Sprintf("  %2d. %-20s %2d/%-2d  %6s %s", row.Rank, row.Name, row.Score, row.Total, elapsed, mark)
			b.WriteString(r.theme.PanelBody.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(r.theme.Muted.Render("e export csv  ·  j export json  ·  x clear  ·  esc back"))
	b.WriteString(r.statusLine())
	return b.String()
}

func (r *Root) statusLine() string {
	if r.statusFlash == "" {
		return ""
	}
	return "\n" + r.theme.Status.Width(r.cols).Render(r.statusFlash)
}

func (r *Root) renderOverlay() string {
	switch {
	case r.quitConfirmOpen:
		return r.renderConfirm("Abandon this quiz?", "The attempt will be discarded.")
	case r.clearConfirmOpen:
		return r.renderConfirm("Clear the leaderboard?", "All saved records will be deleted.")
	case r.feedback.Visible:
		return r.renderFeedback()
	}
	return ""
}

func (r *Root) renderConfirm(title, detail string) string {
	yes := " Yes "
	no := " No "
	if r.confirmIndex == 0 {
		yes = r.theme.Selected.Render(yes)
		no = r.theme.Muted.Render(no)
	} else {
		yes = r.theme.Muted.Render(yes)
		no = r.theme.Selected.Render(no)
	}
	body := r.theme.OverlayTitle.Render(title) + "\n" +
		r.theme.PanelBody.Render(detail) + "\n\n" +
		yes + "   " + no
	return r.theme.Overlay.Render(body)
}

func (r *Root) renderFeedback() string {
	var line string
	switch {
	case r.feedback.Correct:
		line = r.theme.Correct.Render("Correct!")
	case r.feedback.Close:
		line = r.theme.Wrong.Render("So close! Check your spelling.")
	default:
		line = r.theme.Wrong.Render("Not quite.")
	}
	return r.theme.Overlay.Render(line)
}

// composeOverlay splices the overlay box over the base content. The
// spring drives the vertical slide-in; overlay rows replace whole base
// rows, centered horizontally.
func (r *Root) composeOverlay(base, overlay string) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < r.rows {
		baseLines = append(baseLines, "")
	}
	overlayLines := strings.Split(overlay, "\n")

	targetRow := (r.rows - len(overlayLines)) / 2
	if targetRow < 0 {
		targetRow = 0
	}
	row := int(r.overlayPos * float64(targetRow))
	for i, line := range overlayLines {
		idx := row + i
		if idx < 0 {
			continue
		}
		placed := lipgloss.PlaceHorizontal(r.cols, lipgloss.Center, line)
		if idx < len(baseLines) {
			baseLines[idx] = placed
		} else {
			baseLines = append(baseLines, placed)
		}
	}
	return strings.Join(baseLines, "\n")
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	if target > 0 {
		return r.overlayPos < 0.999 || abs(r.overlayVel) > 0.001
	}
	return r.overlayPos > 0.001 || abs(r.overlayVel) > 0.001
}

func (r *Root) animateIfNeeded() tea.Cmd {
	target := 0.0
	if r.overlayActive() {
		target = 1.0
	}
	if r.shouldAnimate(target) || r.feedback.Visible {
		return animateTickCmd()
	}
	return nil
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func mmss(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
