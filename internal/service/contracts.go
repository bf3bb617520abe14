package service

import (
	"context"
	"time"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/repository"
)

// QuestionSource resolves the current question set.
type QuestionSource interface {
	Load(ctx context.Context) (*repository.Snapshot, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user *entities.User) (bool, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type QuizRepository interface {
	Create(ctx context.Context, s *entities.QuizSession) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.QuizSession, error)
	GetActiveByUserID(ctx context.Context, userID int64) (*entities.QuizSession, error)
	Update(ctx context.Context, s *entities.QuizSession) error
	SaveAnswer(ctx context.Context, a *entities.QuizAnswer) error
	GetStats(ctx context.Context, userID int64) (entities.AnswerStats, error)
	AbandonStale(ctx context.Context, startedBefore time.Time) ([]int64, error)
	AbandonActive(ctx context.Context, userID int64) (int64, error)
}

// Transactor runs fn atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Observer receives extraction and grading events, e.g. for metrics.
type Observer interface {
	ObserveLoad(source string, documents, questions int)
	ObserveLoadError()
	ObserveAnswer(correct bool)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(string, int, int) {}
func (nopObserver) ObserveLoadError()            {}
func (nopObserver) ObserveAnswer(bool)           {}
