package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSourceUnavailable wraps any failure to read or decode the bank file.
// Callers treat it as retryable: no session can start until a reload works.
var ErrSourceUnavailable = errors.New("question source unavailable")

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// Load reads and validates a question bank file. JSON banks use the flat
// array layout; YAML banks accept the same fields per document entry.
func (l *FSLoader) Load(ctx context.Context, path string) (Bank, error) {
	if err := ctx.Err(); err != nil {
		return Bank{}, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read %s: %v: %w", path, err, ErrSourceUnavailable)
	}

	var wire []wireQuestion
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(body, &wire)
	default:
		err = json.Unmarshal(body, &wire)
	}
	if err != nil {
		return Bank{}, fmt.Errorf("decode %s: %v: %w", path, err, ErrSourceUnavailable)
	}

	questions := make([]Question, 0, len(wire))
	for i, w := range wire {
		q, err := w.toQuestion()
		if err != nil {
			return Bank{}, fmt.Errorf("question %d: %v: %w", i, err, ErrSourceUnavailable)
		}
		if err := q.validate(i); err != nil {
			return Bank{}, fmt.Errorf("%v: %w", err, ErrSourceUnavailable)
		}
		questions = append(questions, q)
	}
	return Bank{Questions: questions}, nil
}

type wireQuestion struct {
	Difficulty string         `json:"difficulty" yaml:"difficulty"`
	Type       string         `json:"type" yaml:"type"`
	Prompt     string         `json:"prompt" yaml:"prompt"`
	Code       *wireCodeBlock `json:"code" yaml:"code"`
	Choices    []string       `json:"choices" yaml:"choices"`
	Answer     answerValue    `json:"answer" yaml:"answer"`
}

type wireCodeBlock struct {
	Lang string `json:"lang" yaml:"lang"`
	Text string `json:"text" yaml:"text"`
}

func (w wireQuestion) toQuestion() (Question, error) {
	difficulty, err := ParseDifficulty(w.Difficulty)
	if err != nil {
		return Question{}, err
	}

	q := Question{
		Difficulty: difficulty,
		Prompt:     w.Prompt,
		Choices:    append([]string(nil), w.Choices...),
	}
	if w.Code != nil && strings.TrimSpace(w.Code.Text) != "" {
		q.Code = &CodeBlock{Lang: w.Code.Lang, Text: w.Code.Text}
	}

	switch strings.ToLower(strings.TrimSpace(w.Type)) {
	case string(TypeMultipleChoice), "multiple-choice", "multiple_choice":
		q.Type = TypeMultipleChoice
		if w.Answer.index == nil {
			return Question{}, errors.New("multiple choice answer must be a choice index")
		}
		q.AnswerIndex = *w.Answer.index
	case string(TypeShortAnswer), "short-answer", "short_answer":
		q.Type = TypeShortAnswer
		if w.Answer.index != nil {
			return Question{}, errors.New("short answer must be a text or a list of texts")
		}
		q.Answers = append([]string(nil), w.Answer.texts...)
	default:
		q.Type = QuestionType(w.Type)
	}
	return q, nil
}

// answerValue tolerates the three wire shapes the bank format allows: a
// zero-based choice index, a single text, or a list of acceptable texts.
type answerValue struct {
	index *int
	texts []string
}

func (a *answerValue) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		a.index = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.texts = []string{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		a.texts = list
		return nil
	}
	return errors.New("answer must be a choice index, a text, or a list of texts")
}

func (a *answerValue) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err == nil {
		a.index = &n
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		a.texts = []string{s}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err == nil {
		a.texts = list
		return nil
	}
	return errors.New("answer must be a choice index, a text, or a list of texts")
}
