package entities

import "fmt"

// Question is a multiple-choice question extracted from a source document.
type Question struct {
	SequenceID   int      `json:"id"`          // 1-based position in the aggregated list
	Code         string   `json:"code"`        // exam item code, e.g. "SN1-1"
	Category     string   `json:"category"`    // label of the contributing document
	FPTag        string   `json:"fp_tag"`      // annotation next to the code, e.g. "FP"
	Text         string   `json:"question"`    // question prompt
	Options      []string `json:"options"`     // option position encodes the letter A, B, C...
	CorrectIndex int      `json:"correct"`     // 0-based index into Options
	Explanation  string   `json:"explanation"` // never empty
}

// Public returns the answer-free projection of the question.
func (q Question) Public() PublicQuestion {
	options := make([]string, len(q.Options))
	copy(options, q.Options)

	return PublicQuestion{
		ID:       q.SequenceID,
		Code:     q.Code,
		Category: q.Category,
		FPTag:    q.FPTag,
		Question: q.Text,
		Options:  options,
	}
}

// Check grades the given option index.
func (q Question) Check(answer int) CheckResult {
	return CheckResult{
		Correct:       answer == q.CorrectIndex,
		CorrectAnswer: q.CorrectIndex,
		Explanation:   q.Explanation,
	}
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// PublicQuestion is what clients see before grading.
type PublicQuestion struct {
	ID       int      `json:"id"`
	Code     string   `json:"code"`
	Category string   `json:"category"`
	FPTag    string   `json:"fp_tag"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// CheckResult is the outcome of grading a single answer.
type CheckResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// OptionLetter returns the letter for a 0-based option index: 0 -> "A".
func OptionLetter(index int) string {
	if index < 0 || index >= 26 {
		return fmt.Sprintf("%d", index+1)
	}
	return string(rune('A' + index))
}

// DefaultExplanation is used when a document provides no explanation.
func DefaultExplanation(correctIndex int) string {
	return "Doğru cevap: " + OptionLetter(correctIndex)
}
