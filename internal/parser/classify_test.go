package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		line     string
		wantCode string
		wantTag  string
		wantOK   bool
	}{
		{line: "**SN1-1**", wantCode: "SN1-1", wantOK: true},
		{line: "### **SN10-1 (FP)**", wantCode: "SN10-1", wantTag: "FP", wantOK: true},
		{line: "**sn2-3 (Yeni)**", wantCode: "sn2-3", wantTag: "Yeni", wantOK: true},
		{line: "SN9-3 (FP)", wantCode: "SN9-3", wantTag: "FP", wantOK: true},
		{line: "SN9-3", wantOK: false},
		{line: "**Soru 3**", wantOK: false},
		{line: "What is SN1?", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			code, tag, ok := MatchHeader(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}

func TestMatchOption(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{line: "A) 3", want: "3", wantOK: true},
		{line: "B. four", want: "four", wantOK: true},
		{line: "C: five", want: "five", wantOK: true},
		{line: "- D) six", want: "six", wantOK: true},
		{line: "E) seven", wantOK: false},
		{line: "a) lower", wantOK: false},
		{line: "A three", wantOK: false},
		{line: "Answer: B", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := MatchOption(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchLooseOption(t *testing.T) {
	got, ok := matchLooseOption("B four")
	assert.True(t, ok)
	assert.Equal(t, "four", got)

	got, ok = matchLooseOption("C) five")
	assert.True(t, ok)
	assert.Equal(t, "five", got)

	_, ok = matchLooseOption("Because")
	assert.False(t, ok)
}

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		line   string
		want   int
		wantOK bool
	}{
		{line: "Correct Answer: B", want: 1, wantOK: true},
		{line: "**Correct Answer:** C", want: 2, wantOK: true},
		{line: "**Correct Answer: D**", want: 3, wantOK: true},
		{line: "Doğru Cevap: a", want: 0, wantOK: true},
		{line: "**Doğru Cevap:** **B**", want: 1, wantOK: true},
		{line: "Correct Answer: none", wantOK: false},
		{line: "Correct Answer:", wantOK: false},
		{line: "The correct answer is B", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := MatchAnswer(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAnswerLabel(t *testing.T) {
	assert.True(t, IsAnswerLabel("Correct Answer: none"))
	assert.True(t, IsAnswerLabel("**Doğru Cevap:**"))
	assert.False(t, IsAnswerLabel("A) Correct Answer: B"))
}

func TestLabels(t *testing.T) {
	rest, ok := StripQuestionLabel("**Soru:** Ne zaman?")
	assert.True(t, ok)
	assert.Equal(t, "Ne zaman?", rest)

	rest, ok = StripExplanationLabel("Explanation: because")
	assert.True(t, ok)
	assert.Equal(t, "because", rest)

	_, ok = StripQuestionLabel("**Soru 3**")
	assert.False(t, ok)
	assert.True(t, IsQuestionLabel("**Soru 3**"))
}

func TestLinePredicates(t *testing.T) {
	assert.True(t, IsHorizontalRule("---"))
	assert.True(t, IsHorizontalRule("  -----  "))
	assert.False(t, IsHorizontalRule("--"))
	assert.False(t, IsHorizontalRule("--- x"))

	assert.True(t, IsTotalLine("**Total: 12 Questions**"))
	assert.True(t, IsTotalLine("Total: 3 Questions"))
	assert.False(t, IsTotalLine("Totally"))

	assert.True(t, IsHeading("## Soru 1"))
	assert.False(t, IsHeading("Soru 1"))

	assert.True(t, HasCodeToken("see SN12-4 for details"))
	assert.False(t, HasCodeToken("see 12-4"))
}
