package grading

import (
	"github.com/agnivade/levenshtein"

	"quizdojo/internal/bank"
)

// closeDistance is the maximum Levenshtein distance for a wrong short
// answer to still earn a "close" hint in the feedback popup.
const closeDistance = 2

type Grader struct{}

func NewGrader() *Grader { return &Grader{} }

// IsCorrect never errors: malformed or missing submissions grade incorrect.
func (g *Grader) IsCorrect(q bank.Question, ans Answer) bool {
	switch q.Type {
	case bank.TypeMultipleChoice:
		return ans.Kind == AnswerChoice && ans.Choice == q.AnswerIndex
	case bank.TypeShortAnswer:
		if ans.Kind != AnswerText {
			return false
		}
		got := Normalize(ans.Text)
		if got == "" {
			return false
		}
		for _, accept := range q.Answers {
			if Normalize(accept) == got {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ComputeScore folds the grader over the full answer sequence. Pure and
// idempotent: the UI calls it on every redraw for the live score badge.
func (g *Grader) ComputeScore(questions []bank.Question, answers []Answer) Score {
	score := Score{Total: len(questions)}
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if g.IsCorrect(q, answers[i]) {
			score.Correct++
		}
	}
	return score
}

// CloseMatch reports whether a wrong short answer is within editing
// distance of an acceptable one. Feedback only; never affects the score.
func (g *Grader) CloseMatch(q bank.Question, ans Answer) bool {
	if q.Type != bank.TypeShortAnswer || ans.Kind != AnswerText {
		return false
	}
	got := Normalize(ans.Text)
	if got == "" || g.IsCorrect(q, ans) {
		return false
	}
	for _, accept := range q.Answers {
		if levenshtein.ComputeDistance(Normalize(accept), got) <= closeDistance {
			return true
		}
	}
	return false
}
