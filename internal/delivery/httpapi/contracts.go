package httpapi

import (
	"context"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/service"
	"github.com/aliskhannn/exam-quiz-bot/internal/storage"
)

type QuestionService interface {
	List(ctx context.Context, category string) ([]entities.PublicQuestion, error)
	Categories(ctx context.Context) ([]service.CategoryCount, error)
	Check(ctx context.Context, id, answer int) (*entities.CheckResult, error)
}

type StatsStorage interface {
	Store(clientID string, stats storage.ClientStats)
	Get(clientID string) (storage.ClientStats, bool)
}
