package parser

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
)

// Category labels.
const (
	CategoryGeneral = "Genel"
	CategoryOther   = "Diğer"
	slidePrefix     = "Slayt "
)

var (
	firstNumberPattern = regexp.MustCompile(`\d+`)
	slideNamePattern   = regexp.MustCompile(`(?i)^s(\d+)\.[a-z0-9]+$`)
)

// DocumentResult is the extraction output of one document.
type DocumentResult struct {
	Name      string
	Questions []entities.Question
}

// Aggregate concatenates document results in the given order and numbers the
// questions 1..N.
func Aggregate(docs []DocumentResult) []entities.Question {
	total := 0
	for _, d := range docs {
		total += len(d.Questions)
	}

	out := make([]entities.Question, 0, total)
	for _, d := range docs {
		for _, q := range d.Questions {
			q.SequenceID = len(out) + 1
			out = append(out, q)
		}
	}
	return out
}

// CategoryFor derives the category label from a file name: "s7.md" becomes
// "Slayt 7", anything else "Diğer".
func CategoryFor(name string) string {
	if m := slideNamePattern.FindStringSubmatch(name); m != nil {
		return slidePrefix + m[1]
	}
	return CategoryOther
}

// SlideCategory returns the category label of slide n.
func SlideCategory(n int) string {
	return slidePrefix + strconv.Itoa(n)
}

// SortKey returns the first integer embedded in name, or 0 when there is none.
func SortKey(name string) uint64 {
	digits := firstNumberPattern.FindString(name)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return math.MaxUint64
	}
	return n
}

// SortNames orders file names by their embedded number; ties keep their
// relative order.
func SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return SortKey(names[i]) < SortKey(names[j])
	})
}
