package storage

import (
	"sync"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
)

type quizEntry struct {
	questions []entities.Question
	messageID int
}

// QuizStorage provides in-memory storage for quiz questions by session ID.
// The question list of a session is frozen when the session starts, so
// renumbering after a document edit does not affect a running quiz.
type QuizStorage struct {
	mu      sync.RWMutex
	entries map[int64]quizEntry
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		entries: make(map[int64]quizEntry),
	}
}

// Store saves a list of questions for a given session ID.
func (s *QuizStorage) Store(sessionID int64, questions []entities.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = quizEntry{questions: questions}
}

// Get retrieves the list of questions for a given session ID.
func (s *QuizStorage) Get(sessionID int64) []entities.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[sessionID].questions
}

// Question returns the question at a 1-based position of the session.
func (s *QuizStorage) Question(sessionID int64, num int) (*entities.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := s.entries[sessionID].questions
	if num < 1 || num > len(questions) {
		return nil, false
	}
	q := questions[num-1]
	return &q, true
}

// SetMessageID remembers the message that shows the current question.
func (s *QuizStorage) SetMessageID(sessionID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return
	}
	entry.messageID = messageID
	s.entries[sessionID] = entry
}

// GetMessageID returns the message that shows the current question.
func (s *QuizStorage) GetMessageID(sessionID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[sessionID]
	if !ok || entry.messageID == 0 {
		return 0, false
	}
	return entry.messageID, true
}

// Delete removes questions for a given session ID.
func (s *QuizStorage) Delete(sessionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}
