package entities

import (
	"time"
)

// Quiz session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// QuizSession represents a single quiz session for a user.
// It tracks the session ID, user ID, progress, selected category, session status, and timestamps.
type QuizSession struct {
	ID                 int64      // unique session ID
	UserID             int64      // user ID who started the quiz
	CurrentQuestionNum int        // current question number in the quiz (1-based)
	CorrectAnswers     int        // number of correct answers so far
	TotalQuestions     int        // total number of questions in the quiz
	Category           string     // category filter, empty for all categories
	SessionStatus      string     // session status: "active", "completed", or "abandoned"
	StartedAt          time.Time  // timestamp when the quiz started
	CompletedAt        *time.Time // timestamp when the quiz was completed (nullable)
	Version            int        // optimistic lock counter
}

// NewQuizSession creates a new quiz session for a user with the specified total questions and category.
func NewQuizSession(userID int64, totalQuestions int, category string) *QuizSession {
	return &QuizSession{
		UserID:             userID,
		CurrentQuestionNum: 1,
		TotalQuestions:     totalQuestions,
		Category:           category,
		SessionStatus:      SessionActive,
		StartedAt:          time.Now(),
	}
}

// IsActive reports whether answers are still accepted.
func (qs *QuizSession) IsActive() bool {
	return qs.SessionStatus == SessionActive
}

// Advance records one answered question and completes the session after the last one.
func (qs *QuizSession) Advance(correct bool) {
	if correct {
		qs.CorrectAnswers++
	}
	qs.CurrentQuestionNum++
	if qs.CurrentQuestionNum > qs.TotalQuestions {
		qs.Complete()
	}
}

// Complete marks the quiz session as completed and sets the completion timestamp.
func (qs *QuizSession) Complete() {
	qs.SessionStatus = SessionCompleted
	now := time.Now()
	qs.CompletedAt = &now
}

// Percentage returns the share of correct answers in percent.
func (qs *QuizSession) Percentage() float64 {
	if qs.TotalQuestions == 0 {
		return 0
	}
	return float64(qs.CorrectAnswers) / float64(qs.TotalQuestions) * 100
}

// QuizAnswer represents a user's answer to a quiz question.
type QuizAnswer struct {
	ID           int64     // unique answer ID
	UserID       int64     // user ID who answered
	SessionID    int64     // quiz session ID
	QuestionID   int       // sequence id of the question at the time of answering
	QuestionCode string    // code of the question, stable across renumbering
	SelectedIdx  int       // option index chosen by the user
	CorrectIdx   int       // option index of the correct answer
	IsCorrect    bool      // whether the answer was correct
	AnsweredAt   time.Time // timestamp when the answer was submitted
}

// NewQuizAnswer creates a graded answer for a question.
func NewQuizAnswer(userID, sessionID int64, q *Question, selected int) *QuizAnswer {
	return &QuizAnswer{
		UserID:       userID,
		SessionID:    sessionID,
		QuestionID:   q.SequenceID,
		QuestionCode: q.Code,
		SelectedIdx:  selected,
		CorrectIdx:   q.CorrectIndex,
		IsCorrect:    selected == q.CorrectIndex,
		AnsweredAt:   time.Now(),
	}
}

// AnswerStats aggregates a user's answers across sessions.
type AnswerStats struct {
	Total   int
	Correct int
	Wrong   int
}

// Accuracy returns the share of correct answers in percent.
func (s AnswerStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}
