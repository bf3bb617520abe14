package parser

// Format is one of the two authoring conventions a document can follow.
type Format int

const (
	// FormatCurrent separates questions with horizontal rules and tags them with codes like SN1-1.
	FormatCurrent Format = iota
	// FormatLegacy uses "## Soru N" headings and labelled sections.
	FormatLegacy
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	default:
		return "current"
	}
}

// Detect picks the convention of a document. A code token anywhere in the
// text wins over legacy headings.
func Detect(content string) Format {
	if legacyHeadingPattern.MatchString(content) && !HasCodeToken(content) {
		return FormatLegacy
	}
	return FormatCurrent
}

// grammar bundles the segmentation and extraction rules of one convention.
type grammar interface {
	segment(content string) []string
	extract(block string) fields
	minOptions() int
}

func (f Format) grammar() grammar {
	if f == FormatLegacy {
		return legacyGrammar{}
	}
	return currentGrammar{}
}
