package parser

import (
	"regexp"
	"strings"
)

var (
	codeTokenPattern = regexp.MustCompile(`\b[A-Za-z]+\d+-\d+\b`)

	// ### **SN10-1 (FP)** or **SN1-5**
	emphasizedHeaderPattern = regexp.MustCompile(`\*\*([A-Za-z]+\d+-\d+)\s*(?:\(([^)]+)\))?\*\*`)
	// SN9-3 (FP)
	bareHeaderPattern = regexp.MustCompile(`^([A-Za-z]+\d+-\d+)\s*\(([^)]+)\)`)

	optionPattern      = regexp.MustCompile(`^(?:[-*+]\s+)?([A-D])[).:]\s*(.+)$`)
	looseOptionPattern = regexp.MustCompile(`^(?:[-*+]\s+)?([A-D])\s+(.+)$`)

	answerLabelPattern = regexp.MustCompile(`^(?:\*\*)?(?:Correct Answer|Doğru Cevap)\s*:`)
	answerPattern      = regexp.MustCompile(`^(?:\*\*)?(?:Correct Answer|Doğru Cevap)\s*:\s*(?:\*\*)?\s*(?:\*\*)?([A-Da-d])\b`)

	questionLabelPattern    = regexp.MustCompile(`^(?:\*\*)?(?:Soru|Question)\s*:\s*(?:\*\*)?\s*`)
	explanationLabelPattern = regexp.MustCompile(`^(?:\*\*)?(?:Açıklama|Explanation)\s*:\s*(?:\*\*)?\s*`)

	horizontalRulePattern = regexp.MustCompile(`^-{3,}$`)
	legacyHeadingPattern  = regexp.MustCompile(`(?m)^##[ \t]+Soru[ \t]+\d+[^\n]*$`)
)

// MatchHeader reports whether line carries a question code and returns the
// code together with the optional tag in parentheses.
func MatchHeader(line string) (code, tag string, ok bool) {
	line = strings.TrimSpace(line)

	if m := emphasizedHeaderPattern.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}
	if m := bareHeaderPattern.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// HasCodeToken reports whether text contains a code of the form <letters><digits>-<digits>.
func HasCodeToken(text string) bool {
	return codeTokenPattern.MatchString(text)
}

// MatchOption matches an option line such as "A) text", "- B. text" or "C: text".
func MatchOption(line string) (text string, ok bool) {
	m := optionPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

// matchLooseOption additionally accepts "A text" without a delimiter. It is
// only safe once the option list has started.
func matchLooseOption(line string) (text string, ok bool) {
	if text, ok = MatchOption(line); ok {
		return text, true
	}
	m := looseOptionPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

// IsOptionLine reports whether line starts an option list.
func IsOptionLine(line string) bool {
	_, ok := MatchOption(line)
	return ok
}

// IsAnswerLabel reports whether line is a correct-answer declaration,
// whether or not it names a usable letter.
func IsAnswerLabel(line string) bool {
	return answerLabelPattern.MatchString(strings.TrimSpace(line))
}

// MatchAnswer returns the 0-based option index declared by a correct-answer line.
func MatchAnswer(line string) (index int, ok bool) {
	m := answerPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	return letterIndex(m[1]), true
}

// StripQuestionLabel removes a "**Soru:**" style label.
func StripQuestionLabel(line string) (rest string, ok bool) {
	return stripLabel(questionLabelPattern, line)
}

// StripExplanationLabel removes a "**Açıklama:**" style label.
func StripExplanationLabel(line string) (rest string, ok bool) {
	return stripLabel(explanationLabelPattern, line)
}

// IsQuestionLabel matches redundant label lines like "**Soru 3**".
func IsQuestionLabel(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "**Soru") || strings.HasPrefix(line, "**Question")
}

// IsHeading reports whether line is a markdown heading.
func IsHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// IsHorizontalRule reports whether line is a run of three or more dashes.
func IsHorizontalRule(line string) bool {
	return horizontalRulePattern.MatchString(strings.TrimSpace(line))
}

// IsTotalLine matches the "Total: N Questions" summary line.
func IsTotalLine(line string) bool {
	line = strings.TrimLeft(strings.TrimSpace(line), "*_ ")
	return strings.HasPrefix(line, "Total:")
}

func stripLabel(pattern *regexp.Regexp, line string) (string, bool) {
	line = strings.TrimSpace(line)
	loc := pattern.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(line[loc[1]:]), true
}

func letterIndex(letter string) int {
	if letter == "" {
		return 0
	}
	return int(strings.ToUpper(letter)[0] - 'A')
}
