package telegram

import (
	"context"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (bool, error)
}

type QuestionService interface {
	Categories(ctx context.Context) ([]service.CategoryCount, error)
}

type QuizService interface {
	StartQuiz(ctx context.Context, userID int64, category string) (*entities.QuizSession, []entities.Question, error)
	GetActiveSession(ctx context.Context, userID int64) (*entities.QuizSession, error)
	GetSession(ctx context.Context, sessionID int64) (*entities.QuizSession, error)
	SubmitAnswer(ctx context.Context, userID, sessionID int64, q *entities.Question, selectedIndex int) (*entities.QuizAnswer, *entities.QuizSession, error)
	Stats(ctx context.Context, userID int64) (entities.AnswerStats, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) (int64, error)
}

type QuizStorage interface {
	Store(sessionID int64, questions []entities.Question)
	Get(sessionID int64) []entities.Question
	Question(sessionID int64, num int) (*entities.Question, bool)
	SetMessageID(sessionID int64, messageID int)
	GetMessageID(sessionID int64) (int, bool)
	Delete(sessionID int64)
}
