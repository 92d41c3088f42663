package grading

type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerChoice
	AnswerText
)

// Answer is one captured slot. Slots start as AnswerNone and are
// overwritten in place by the session; text stays raw until grading.
type Answer struct {
	Kind   AnswerKind
	Choice int
	Text   string
}

func NoAnswer() Answer            { return Answer{Kind: AnswerNone} }
func ChoiceAnswer(idx int) Answer { return Answer{Kind: AnswerChoice, Choice: idx} }
func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerText, Text: text}
}

type Score struct {
	Correct int
	Total   int
}
