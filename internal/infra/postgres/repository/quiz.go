package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/infra/postgres"
)

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrOptimisticLock  = errors.New("quiz session was modified by another process")
)

const sessionColumns = `
	id, user_id, current_question_num, correct_answers, total_questions,
	category, session_status, started_at, completed_at, version
`

// QuizRepository provides access to quiz session and answer data in the database.
type QuizRepository struct {
	db postgres.DBTX
}

// NewQuizRepository creates a new QuizRepository with the provided database pool.
func NewQuizRepository(db postgres.DBTX) *QuizRepository {
	return &QuizRepository{db: db}
}

// Create inserts a new quiz session and returns its ID.
func (r *QuizRepository) Create(ctx context.Context, session *entities.QuizSession) (int64, error) {
	query := `
		INSERT INTO quiz_sessions (
			user_id, current_question_num, total_questions,
			category, session_status, started_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := postgres.Conn(ctx, r.db).QueryRow(
		ctx,
		query,
		session.UserID,
		session.CurrentQuestionNum,
		session.TotalQuestions,
		session.Category,
		session.SessionStatus,
		session.StartedAt,
		session.Version,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create quiz session: %w", err)
	}

	return id, nil
}

// GetByID retrieves a session by its ID.
func (r *QuizRepository) GetByID(ctx context.Context, id int64) (*entities.QuizSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM quiz_sessions WHERE id = $1`

	session, err := scanSession(postgres.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get quiz session: %w", err)
	}
	return session, nil
}

// GetActiveByUserID retrieves the most recent active session of a user.
func (r *QuizRepository) GetActiveByUserID(ctx context.Context, userID int64) (*entities.QuizSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM quiz_sessions
		WHERE user_id = $1 AND session_status = 'active'
		ORDER BY started_at DESC
		LIMIT 1
	`

	session, err := scanSession(postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("get active quiz session: %w", err)
	}
	return session, nil
}

// Update stores session progress using optimistic locking.
func (r *QuizRepository) Update(ctx context.Context, session *entities.QuizSession) error {
	query := `
		UPDATE quiz_sessions
		SET current_question_num = $1,
		    correct_answers = $2,
		    session_status = $3,
		    completed_at = $4,
		    version = version + 1
		WHERE id = $5 AND version = $6
	`

	result, err := postgres.Conn(ctx, r.db).Exec(
		ctx,
		query,
		session.CurrentQuestionNum,
		session.CorrectAnswers,
		session.SessionStatus,
		session.CompletedAt,
		session.ID,
		session.Version,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOptimisticLock
	}

	session.Version++
	return nil
}

// SaveAnswer stores a graded answer.
func (r *QuizRepository) SaveAnswer(ctx context.Context, answer *entities.QuizAnswer) error {
	query := `
		INSERT INTO quiz_answers (
			user_id, session_id, question_id, question_code,
			selected_index, correct_index, is_correct, answered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := postgres.Conn(ctx, r.db).Exec(
		ctx,
		query,
		answer.UserID,
		answer.SessionID,
		answer.QuestionID,
		answer.QuestionCode,
		answer.SelectedIdx,
		answer.CorrectIdx,
		answer.IsCorrect,
		answer.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("save answer: %w", err)
	}

	return nil
}

// GetStats counts all answers of a user.
func (r *QuizRepository) GetStats(ctx context.Context, userID int64) (entities.AnswerStats, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct)
		FROM quiz_answers
		WHERE user_id = $1
	`

	var stats entities.AnswerStats
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(&stats.Total, &stats.Correct)
	if err != nil {
		return entities.AnswerStats{}, fmt.Errorf("get answer stats: %w", err)
	}

	stats.Wrong = stats.Total - stats.Correct
	return stats, nil
}

// AbandonStale marks active sessions started before the cutoff as abandoned
// and returns their ids.
func (r *QuizRepository) AbandonStale(ctx context.Context, startedBefore time.Time) ([]int64, error) {
	query := `
		UPDATE quiz_sessions
		SET session_status = 'abandoned',
		    version = version + 1
		WHERE session_status = 'active' AND started_at < $1
		RETURNING id
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, startedBefore)
	if err != nil {
		return nil, fmt.Errorf("abandon stale sessions: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("abandon stale sessions: %w", err)
	}

	return ids, nil
}

// AbandonActive marks every active session of a user as abandoned.
func (r *QuizRepository) AbandonActive(ctx context.Context, userID int64) (int64, error) {
	query := `
		UPDATE quiz_sessions
		SET session_status = 'abandoned',
		    version = version + 1
		WHERE session_status = 'active' AND user_id = $1
	`

	result, err := postgres.Conn(ctx, r.db).Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("abandon active sessions: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*entities.QuizSession, error) {
	var session entities.QuizSession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.CurrentQuestionNum,
		&session.CorrectAnswers,
		&session.TotalQuestions,
		&session.Category,
		&session.SessionStatus,
		&session.StartedAt,
		&session.CompletedAt,
		&session.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}
