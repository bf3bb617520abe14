package parser

import (
	"regexp"
	"strings"
)

var ruleSeparator = regexp.MustCompile(`\n-{3,}[ \t]*\n`)

// Segment splits a normalized document into candidate question blocks.
func Segment(f Format, content string) []string {
	return f.grammar().segment(normalize(content))
}

func (currentGrammar) segment(content string) []string {
	var blocks []string
	for _, chunk := range ruleSeparator.Split(content, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" || isTotalBlock(chunk) {
			continue
		}
		blocks = append(blocks, chunk)
	}
	return blocks
}

func (legacyGrammar) segment(content string) []string {
	chunks := legacyHeadingPattern.Split(content, -1)
	if len(chunks) <= 1 {
		return nil
	}

	// chunks[0] is front matter.
	blocks := make([]string, 0, len(chunks)-1)
	for _, chunk := range chunks[1:] {
		blocks = append(blocks, strings.TrimSpace(chunk))
	}
	return blocks
}

// isTotalBlock matches a block holding nothing but the "Total: N Questions" summary.
func isTotalBlock(block string) bool {
	return strings.Contains(block, "Total:") &&
		strings.Contains(block, "Questions") &&
		len(strings.Split(block, "\n")) <= 2
}

// normalize strips a UTF-8 BOM and converts CRLF line endings.
func normalize(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

func splitLines(block string) []string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
