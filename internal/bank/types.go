package bank

import (
	"fmt"
	"strings"
)

// Difficulty partitions the question bank and the leaderboard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyHard   Difficulty = "Hard"
	DifficultyExpert Difficulty = "Expert"
)

// Difficulties lists the supported tiers in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyHard, DifficultyExpert}

func ParseDifficulty(raw string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return DifficultyEasy, nil
	case "hard":
		return DifficultyHard, nil
	case "expert":
		return DifficultyExpert, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", raw)
	}
}

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "mcq"
	TypeShortAnswer    QuestionType = "short"
)

// CodeBlock is display-only source attached to a prompt.
type CodeBlock struct {
	Lang string
	Text string
}

type Question struct {
	Difficulty Difficulty
	Type       QuestionType
	Prompt     string
	Code       *CodeBlock

	// Multiple choice only.
	Choices     []string
	AnswerIndex int

	// Short answer only. One or more acceptable texts.
	Answers []string
}

// Bank is the loaded question pool. Read-only once loaded.
type Bank struct {
	Questions []Question
}

// ByDifficulty returns a fresh slice of the questions in the given tier.
func (b Bank) ByDifficulty(d Difficulty) []Question {
	out := make([]Question, 0, len(b.Questions))
	for _, q := range b.Questions {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// Counts reports how many questions each tier holds.
func (b Bank) Counts() map[Difficulty]int {
	out := map[Difficulty]int{}
	for _, q := range b.Questions {
		out[q.Difficulty]++
	}
	return out
}

func (q Question) validate(pos int) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question %d: empty prompt", pos)
	}
	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Choices) < 2 {
			return fmt.Errorf("question %d: multiple choice needs at least 2 choices, got %d", pos, len(q.Choices))
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
			return fmt.Errorf("question %d: answer index %d out of range for %d choices", pos, q.AnswerIndex, len(q.Choices))
		}
	case TypeShortAnswer:
		if len(q.Answers) == 0 {
			return fmt.Errorf("question %d: short answer needs at least one acceptable text", pos)
		}
	default:
		return fmt.Errorf("question %d: unknown type %q", pos, q.Type)
	}
	return nil
}
