package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
)

var ErrQuestionNotFound = errors.New("question not found")

// CategoryCount is the number of questions a category holds.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// QuestionService serves extracted questions. Every call re-reads the
// documents, so edits show up without a restart.
type QuestionService struct {
	source   QuestionSource
	observer Observer
	logger   *zap.Logger
}

func NewQuestionService(source QuestionSource, observer Observer, logger *zap.Logger) *QuestionService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &QuestionService{
		source:   source,
		observer: observer,
		logger:   logger,
	}
}

// Questions returns full question records, optionally restricted to one
// category. The result contains answers and must not be sent to clients.
func (s *QuestionService) Questions(ctx context.Context, category string) ([]entities.Question, error) {
	snap, err := s.source.Load(ctx)
	if err != nil {
		s.observer.ObserveLoadError()
		return nil, fmt.Errorf("load questions: %w", err)
	}

	s.observer.ObserveLoad(string(snap.Source), snap.Documents, len(snap.Questions))
	s.logger.Debug("questions loaded",
		zap.String("source", string(snap.Source)),
		zap.Int("documents", snap.Documents),
		zap.Int("questions", len(snap.Questions)),
	)

	if category == "" {
		return snap.Questions, nil
	}

	filtered := make([]entities.Question, 0, len(snap.Questions))
	for _, q := range snap.Questions {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

// List returns the answer-free view of the questions.
func (s *QuestionService) List(ctx context.Context, category string) ([]entities.PublicQuestion, error) {
	questions, err := s.Questions(ctx, category)
	if err != nil {
		return nil, err
	}

	public := make([]entities.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}
	return public, nil
}

// Categories lists categories in the order they first appear.
func (s *QuestionService) Categories(ctx context.Context) ([]CategoryCount, error) {
	questions, err := s.Questions(ctx, "")
	if err != nil {
		return nil, err
	}

	var (
		counts []CategoryCount
		index  = make(map[string]int)
	)
	for _, q := range questions {
		i, ok := index[q.Category]
		if !ok {
			i = len(counts)
			index[q.Category] = i
			counts = append(counts, CategoryCount{Name: q.Category})
		}
		counts[i].Count++
	}
	return counts, nil
}

// Get looks a question up by sequence id.
func (s *QuestionService) Get(ctx context.Context, id int) (*entities.Question, error) {
	questions, err := s.Questions(ctx, "")
	if err != nil {
		return nil, err
	}

	for i := range questions {
		if questions[i].SequenceID == id {
			return &questions[i], nil
		}
	}
	return nil, ErrQuestionNotFound
}

// Check grades answer against the question with the given sequence id.
func (s *QuestionService) Check(ctx context.Context, id, answer int) (*entities.CheckResult, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := q.Check(answer)
	s.observer.ObserveAnswer(result.Correct)
	return &result, nil
}
