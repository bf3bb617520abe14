package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/exam-quiz-bot/internal/infra/postgres"
)

// ResetRepository wipes the quiz history of a user.
type ResetRepository struct {
	db postgres.DBTX
}

func NewResetRepository(db postgres.DBTX) *ResetRepository {
	return &ResetRepository{db: db}
}

// ResetUser deletes every answer and session of the user. It reports the
// number of deleted sessions.
func (r *ResetRepository) ResetUser(ctx context.Context, userID int64) (int64, error) {
	conn := postgres.Conn(ctx, r.db)

	if _, err := conn.Exec(ctx, `DELETE FROM quiz_answers WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("delete quiz_answers: %w", err)
	}

	result, err := conn.Exec(ctx, `DELETE FROM quiz_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete quiz_sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
