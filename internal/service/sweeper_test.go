package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/storage"
)

func TestSessionSweeperSweep(t *testing.T) {
	repo := newFakeQuizRepo()
	questions := NewQuestionService(sampleSource(), nil, zap.NewNop())
	quiz := NewQuizService(questions, repo, &fakeTransactor{}, nil, 2)

	session, _, err := quiz.StartQuiz(context.Background(), testUserID, "")
	require.NoError(t, err)
	repo.sessions[session.ID].StartedAt = time.Now().Add(-2 * time.Hour)

	fresh, _, err := quiz.StartQuiz(context.Background(), testUserID+1, "")
	require.NoError(t, err)

	held := storage.NewQuizStorage()
	held.Store(session.ID, []entities.Question{{Text: "q"}})
	held.Store(fresh.ID, []entities.Question{{Text: "q"}})

	sweeper := NewSessionSweeper(quiz, held, time.Hour, "", zap.NewNop())
	assert.Equal(t, "0 * * * *", sweeper.spec)

	sweeper.sweep(context.Background())

	stored, err := repo.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionAbandoned, stored.SessionStatus)

	assert.Nil(t, held.Get(session.ID), "abandoned session questions are released")
	assert.Len(t, held.Get(fresh.ID), 1)
}

func TestSessionSweeperWithoutReleaser(t *testing.T) {
	calls := 0
	sweeper := NewSessionSweeper(abandonerFunc(func(context.Context, time.Duration) ([]int64, error) {
		calls++
		return []int64{1, 2}, nil
	}), nil, time.Hour, "", zap.NewNop())

	assert.NotPanics(t, func() { sweeper.sweep(context.Background()) })
	assert.Equal(t, 1, calls)
}

func TestSessionSweeperRejectsBadSpec(t *testing.T) {
	sweeper := NewSessionSweeper(nopAbandoner(), nil, time.Hour, "not a spec", zap.NewNop())
	assert.Error(t, sweeper.Start(context.Background()))
}

type abandonerFunc func(ctx context.Context, ttl time.Duration) ([]int64, error)

func (f abandonerFunc) AbandonStale(ctx context.Context, ttl time.Duration) ([]int64, error) {
	return f(ctx, ttl)
}

func nopAbandoner() SessionAbandoner {
	return abandonerFunc(func(context.Context, time.Duration) ([]int64, error) { return nil, nil })
}

func TestSessionSweeperStopsWithContext(t *testing.T) {
	sweeper := NewSessionSweeper(nopAbandoner(), nil, time.Hour, "@every 1h", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
