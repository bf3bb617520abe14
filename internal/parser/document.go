// Package parser extracts multiple-choice questions from markdown documents
// written in either the current (SN-coded, rule separated) or the legacy
// ("## Soru N") convention.
package parser

import (
	"strings"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
)

// fields holds what an extractor recovered from one block.
type fields struct {
	code        string
	fpTag       string
	text        string
	options     []string
	correct     int
	explanation string
}

// build validates the recovered fields. Blocks without text, with too few
// options or with an answer outside the option list are dropped.
func (f fields) build(minOptions int, category string) (entities.Question, bool) {
	text := strings.TrimSpace(f.text)
	if text == "" || len(f.options) < minOptions {
		return entities.Question{}, false
	}
	if f.correct < 0 || f.correct >= len(f.options) {
		return entities.Question{}, false
	}

	explanation := strings.TrimSpace(f.explanation)
	if explanation == "" {
		explanation = entities.DefaultExplanation(f.correct)
	}

	return entities.Question{
		Code:         f.code,
		Category:     category,
		FPTag:        f.fpTag,
		Text:         text,
		Options:      f.options,
		CorrectIndex: f.correct,
		Explanation:  explanation,
	}, true
}

// Parse extracts every valid question from a single document. Sequence ids
// are local to the document; Aggregate replaces them.
func Parse(content, category string) []entities.Question {
	return Inspect(content, category).Questions
}

// Report describes one extraction pass over a document.
type Report struct {
	Format    Format
	Blocks    int
	Questions []entities.Question
}

// Inspect extracts a document like Parse and also reports the detected
// format and the number of candidate blocks.
func Inspect(content, category string) Report {
	content = normalize(content)
	format := Detect(content)
	g := format.grammar()
	blocks := g.segment(content)

	report := Report{Format: format, Blocks: len(blocks)}
	for _, block := range blocks {
		q, ok := g.extract(block).build(g.minOptions(), category)
		if !ok {
			continue
		}
		q.SequenceID = len(report.Questions) + 1
		report.Questions = append(report.Questions, q)
	}
	return report
}
