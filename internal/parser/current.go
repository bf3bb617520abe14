package parser

import "strings"

type currentGrammar struct{}

func (currentGrammar) minOptions() int { return 2 }

// phase is a step of the current-format extractor. Phases only move forward.
type phase int

const (
	phaseHeader phase = iota
	phaseText
	phaseOptions
	phaseAnswer
	phaseDone
)

// currentExtractor walks a block with a single cursor that never retreats.
type currentExtractor struct {
	lines  []string
	cursor int
	f      fields
}

func (currentGrammar) extract(block string) fields {
	e := &currentExtractor{lines: splitLines(block)}
	for p := phaseHeader; p != phaseDone; {
		p = e.step(p)
	}
	return e.f
}

func (e *currentExtractor) step(p phase) phase {
	switch p {
	case phaseHeader:
		e.scanHeader()
		return phaseText
	case phaseText:
		e.scanText()
		return phaseOptions
	case phaseOptions:
		e.scanOptions()
		return phaseAnswer
	case phaseAnswer:
		e.scanAnswer()
		return phaseDone
	default:
		return phaseDone
	}
}

// scanHeader looks for the code line anywhere in the block. Without one the
// cursor stays at the top.
func (e *currentExtractor) scanHeader() {
	for idx, line := range e.lines {
		if code, tag, ok := MatchHeader(line); ok {
			e.f.code = code
			e.f.fpTag = tag
			e.cursor = idx + 1
			return
		}
	}
}

func (e *currentExtractor) scanText() {
	var parts []string
	for ; e.cursor < len(e.lines); e.cursor++ {
		line := e.lines[e.cursor]
		if IsOptionLine(line) {
			break
		}
		if line == "" || IsHeading(line) || IsTotalLine(line) {
			continue
		}
		if rest, ok := StripQuestionLabel(line); ok {
			if rest != "" {
				parts = append(parts, rest)
			}
			continue
		}
		if IsQuestionLabel(line) {
			continue
		}
		parts = append(parts, line)
	}
	e.f.text = joinWords(parts)
}

func (e *currentExtractor) scanOptions() {
	for ; e.cursor < len(e.lines); e.cursor++ {
		line := e.lines[e.cursor]
		if IsAnswerLabel(line) {
			return
		}
		if text, ok := matchLooseOption(line); ok {
			e.f.options = append(e.f.options, text)
		}
	}
}

// scanAnswer takes the first usable declaration. A block without one keeps
// index 0.
func (e *currentExtractor) scanAnswer() {
	for ; e.cursor < len(e.lines); e.cursor++ {
		if idx, ok := MatchAnswer(e.lines[e.cursor]); ok {
			e.f.correct = idx
			e.cursor++
			e.scanExplanation()
			return
		}
	}
}

// scanExplanation reads an optional explanation following the answer line.
func (e *currentExtractor) scanExplanation() {
	var parts []string
	started := false
	for ; e.cursor < len(e.lines); e.cursor++ {
		line := e.lines[e.cursor]
		if !started {
			if rest, ok := StripExplanationLabel(line); ok {
				started = true
				if rest != "" {
					parts = append(parts, rest)
				}
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "**") || IsHeading(line) {
			continue
		}
		parts = append(parts, line)
	}
	e.f.explanation = joinWords(parts)
}

func joinWords(parts []string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
