package ui

// Controller receives user intent from the view. Implementations run
// outside the render loop; the view dispatches each call on its own
// goroutine.
type Controller interface {
	OnStartQuiz(difficulty string)
	OnSelectChoice(choice int)
	OnAnswerInput(text string)
	OnAdvance()
	OnQuitQuiz()
	OnSubmitIdentity(identity Identity)
	OnSkipIdentity()
	OnOpenLeaderboard()
	OnBackToStart()
	OnExportCSV()
	OnExportJSON()
	OnClearRecords()
	OnReloadBank()
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(screen Screen)
	SetStartState(StartState)
	SetQuizState(QuizState)
	SetRemaining(sec int)
	SetFeedback(FeedbackState)
	SetResult(ResultState)
	SetLeaderboard(LeaderboardState)
	SetSetupError(msg, details string)
	FlashStatus(msg string)
}

type Screen int

const (
	ScreenStart Screen = iota
	ScreenQuiz
	ScreenResult
	ScreenLeaderboard
)

type StartState struct {
	Tiers     []TierRow
	Attempts  int
	Cleared   int
	BankError string
}

// TierRow summarizes one difficulty on the start screen.
type TierRow struct {
	Difficulty string
	Available  int
}

type QuizState struct {
	Difficulty   string
	Index        int
	Total        int
	Prompt       string
	Code         string
	CodeLanguage string
	Choices      []string
	// Selected is the chosen choice index, -1 when nothing is picked yet.
	Selected     int
	TextAnswer   string
	IsText       bool
	RemainingSec int
	BudgetSec    int
	// LiveCorrect is the running count of correct answers so far.
	LiveCorrect int
}

// FeedbackState drives the per-question popup shown on advance.
type FeedbackState struct {
	Visible bool
	Correct bool
	// Close marks a wrong short answer within typo distance.
	Close bool
}

type ResultState struct {
	Difficulty string
	Correct    int
	Total      int
	ElapsedSec int
	ByTimeout  bool
	Cleared    string
	// AskIdentity opens the winner form for a provisionally qualified
	// score.
	AskIdentity bool
}

type Identity struct {
	Name       string
	StudentID  string
	Department string
	Phone      string
}

type LeaderboardState struct {
	Boards []Board
}

type Board struct {
	Difficulty string
	Rows       []Row
}

type Row struct {
	Rank      int
	Name      string
	Score     int
	Total     int
	Elapsed   string
	Timestamp string
	Cleared   bool
}
