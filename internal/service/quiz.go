package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	pgrepo "github.com/aliskhannn/exam-quiz-bot/internal/infra/postgres/repository"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrInvalidAnswer        = errors.New("invalid selected index")
	ErrSessionNotActive     = errors.New("quiz session is not active")
	ErrForeignSession       = errors.New("quiz session belongs to another user")
	ErrAnswerConflict       = errors.New("question was answered concurrently")
)

// QuestionProvider returns the current full question records.
type QuestionProvider interface {
	Questions(ctx context.Context, category string) ([]entities.Question, error)
}

type QuizService struct {
	questions  QuestionProvider
	quizRepo   QuizRepository
	transactor Transactor
	observer   Observer
	length     int
	shuffle    func(n int, swap func(i, j int))
}

func NewQuizService(
	questions QuestionProvider,
	quizRepo QuizRepository,
	transactor Transactor,
	observer Observer,
	length int,
) *QuizService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &QuizService{
		questions:  questions,
		quizRepo:   quizRepo,
		transactor: transactor,
		observer:   observer,
		length:     length,
		shuffle:    rand.Shuffle,
	}
}

// StartQuiz creates a session over a shuffled selection of questions. An
// empty category selects from all of them.
func (s *QuizService) StartQuiz(
	ctx context.Context, userID int64, category string,
) (*entities.QuizSession, []entities.Question, error) {
	all, err := s.questions.Questions(ctx, category)
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, ErrNoQuestionsAvailable
	}

	selected := make([]entities.Question, len(all))
	copy(selected, all)
	s.shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	if s.length > 0 && len(selected) > s.length {
		selected = selected[:s.length]
	}

	session := entities.NewQuizSession(userID, len(selected), category)
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		// A user runs one quiz at a time.
		if _, err := s.quizRepo.AbandonActive(ctx, userID); err != nil {
			return err
		}

		id, err := s.quizRepo.Create(ctx, session)
		if err != nil {
			return err
		}
		session.ID = id
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("start quiz: %w", err)
	}

	return session, selected, nil
}

// GetActiveSession returns the running session of a user, or nil.
func (s *QuizService) GetActiveSession(ctx context.Context, userID int64) (*entities.QuizSession, error) {
	session, err := s.quizRepo.GetActiveByUserID(ctx, userID)
	if isSessionNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *QuizService) GetSession(ctx context.Context, sessionID int64) (*entities.QuizSession, error) {
	return s.quizRepo.GetByID(ctx, sessionID)
}

// SubmitAnswer grades the selected option and advances the session. The
// answer and the session update are written in one transaction.
func (s *QuizService) SubmitAnswer(
	ctx context.Context,
	userID, sessionID int64,
	q *entities.Question,
	selectedIndex int,
) (*entities.QuizAnswer, *entities.QuizSession, error) {
	if selectedIndex < 0 || selectedIndex >= len(q.Options) {
		return nil, nil, ErrInvalidAnswer
	}

	var (
		answer  *entities.QuizAnswer
		session *entities.QuizSession
	)
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		session, err = s.quizRepo.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session.UserID != userID {
			return ErrForeignSession
		}
		if !session.IsActive() {
			return ErrSessionNotActive
		}

		answer = entities.NewQuizAnswer(userID, session.ID, q, selectedIndex)
		if err := s.quizRepo.SaveAnswer(ctx, answer); err != nil {
			return err
		}

		session.Advance(answer.IsCorrect)
		return s.quizRepo.Update(ctx, session)
	})
	if errors.Is(err, pgrepo.ErrOptimisticLock) {
		return nil, nil, ErrAnswerConflict
	}
	if err != nil {
		return nil, nil, fmt.Errorf("submit answer: %w", err)
	}

	s.observer.ObserveAnswer(answer.IsCorrect)
	return answer, session, nil
}

// Stats returns the answer totals of a user across all sessions.
func (s *QuizService) Stats(ctx context.Context, userID int64) (entities.AnswerStats, error) {
	return s.quizRepo.GetStats(ctx, userID)
}

// AbandonStale marks sessions older than ttl as abandoned and returns their ids.
func (s *QuizService) AbandonStale(ctx context.Context, ttl time.Duration) ([]int64, error) {
	return s.quizRepo.AbandonStale(ctx, time.Now().Add(-ttl))
}

func isSessionNotFound(err error) bool {
	return errors.Is(err, pgrepo.ErrSessionNotFound)
}
