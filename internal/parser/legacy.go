package parser

import (
	"regexp"
	"strings"
)

const (
	labelQuestion    = "**Soru:**"
	labelOptions     = "**Seçenekler:**"
	labelAnswer      = "**Doğru Cevap:**"
	labelExplanation = "**Açıklama:**"
)

var (
	legacyOptionPrefix = regexp.MustCompile(`^-\s+(?:[A-D][).]\s*)?`)
	// "- A) text" opens the option list even without a Seçenekler label.
	legacyLetteredOption = regexp.MustCompile(`^-\s+[A-D][).]\s*\S`)
)

type legacyGrammar struct{}

func (legacyGrammar) minOptions() int { return 1 }

type section int

const (
	sectionNone section = iota
	sectionQuestion
	sectionOptions
	sectionAnswer
	sectionExplanation
)

// extract runs the labelled-section state machine over a "## Soru N" block.
// Lines before the first label are ignored.
func (legacyGrammar) extract(block string) fields {
	var (
		f           fields
		current     = sectionNone
		question    []string
		explanation []string
	)

	for _, line := range splitLines(block) {
		switch {
		case strings.HasPrefix(line, labelQuestion):
			current = sectionQuestion
			question = appendNonEmpty(question[:0], strings.TrimPrefix(line, labelQuestion))

		case strings.HasPrefix(line, labelOptions):
			current = sectionOptions

		case strings.HasPrefix(line, labelAnswer):
			current = sectionAnswer
			f.correct = firstLetterIndex(strings.TrimPrefix(line, labelAnswer))

		case strings.HasPrefix(line, labelExplanation):
			current = sectionExplanation
			explanation = appendNonEmpty(explanation[:0], strings.TrimPrefix(line, labelExplanation))

		case line == "" || strings.HasPrefix(line, "**"):
			continue

		case current == sectionQuestion && legacyLetteredOption.MatchString(line):
			current = sectionOptions
			f.options = append(f.options, legacyOption(line))

		case current == sectionQuestion:
			question = append(question, line)

		case current == sectionOptions && strings.HasPrefix(line, "- "):
			f.options = append(f.options, legacyOption(line))

		case current == sectionExplanation:
			explanation = append(explanation, line)
		}
	}

	f.text = joinWords(question)
	f.explanation = joinWords(explanation)
	return f
}

func legacyOption(line string) string {
	return strings.TrimSpace(legacyOptionPrefix.ReplaceAllString(line, ""))
}

// firstLetterIndex converts the first Latin letter found in s to a 0-based
// index, skipping emphasis, brackets and other decoration. A line without a
// letter yields -1 so the block is rejected.
func firstLetterIndex(s string) int {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			return int(r - 'A')
		case r >= 'a' && r <= 'z':
			return int(r - 'a')
		}
	}
	return -1
}

func appendNonEmpty(parts []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		parts = append(parts, s)
	}
	return parts
}
