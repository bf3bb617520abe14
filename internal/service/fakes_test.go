package service

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	pgrepo "github.com/aliskhannn/exam-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/exam-quiz-bot/internal/repository"
)

type fakeSource struct {
	snap  *repository.Snapshot
	err   error
	calls int
}

func (f *fakeSource) Load(context.Context) (*repository.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type fakeObserver struct {
	loads      int
	loadErrors int
	answers    []bool
}

func (f *fakeObserver) ObserveLoad(string, int, int) { f.loads++ }
func (f *fakeObserver) ObserveLoadError()            { f.loadErrors++ }
func (f *fakeObserver) ObserveAnswer(correct bool)   { f.answers = append(f.answers, correct) }

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeQuizRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*entities.QuizSession
	answers  []entities.QuizAnswer
	reset    map[int64]bool
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{
		sessions: make(map[int64]*entities.QuizSession),
		reset:    make(map[int64]bool),
	}
}

func (f *fakeQuizRepo) Create(_ context.Context, s *entities.QuizSession) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *s
	stored.ID = f.nextID
	f.sessions[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeQuizRepo) GetByID(_ context.Context, id int64) (*entities.QuizSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return nil, pgrepo.ErrSessionNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeQuizRepo) GetActiveByUserID(_ context.Context, userID int64) (*entities.QuizSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *entities.QuizSession
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive() && (latest == nil || s.ID > latest.ID) {
			latest = s
		}
	}
	if latest == nil {
		return nil, pgrepo.ErrSessionNotFound
	}
	out := *latest
	return &out, nil
}

func (f *fakeQuizRepo) Update(_ context.Context, s *entities.QuizSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.sessions[s.ID]
	if !ok {
		return pgrepo.ErrSessionNotFound
	}
	if stored.Version != s.Version {
		return pgrepo.ErrOptimisticLock
	}
	s.Version++
	out := *s
	f.sessions[s.ID] = &out
	return nil
}

func (f *fakeQuizRepo) SaveAnswer(_ context.Context, a *entities.QuizAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, *a)
	return nil
}

func (f *fakeQuizRepo) GetStats(_ context.Context, userID int64) (entities.AnswerStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var stats entities.AnswerStats
	for _, a := range f.answers {
		if a.UserID != userID {
			continue
		}
		stats.Total++
		if a.IsCorrect {
			stats.Correct++
		}
	}
	stats.Wrong = stats.Total - stats.Correct
	return stats, nil
}

func (f *fakeQuizRepo) AbandonStale(_ context.Context, startedBefore time.Time) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []int64
	for id, s := range f.sessions {
		if s.IsActive() && s.StartedAt.Before(startedBefore) {
			s.SessionStatus = entities.SessionAbandoned
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeQuizRepo) AbandonActive(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive() {
			s.SessionStatus = entities.SessionAbandoned
			s.Version++
			n++
		}
	}
	return n, nil
}

func (f *fakeQuizRepo) ResetUser(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
			n++
		}
	}
	kept := f.answers[:0]
	for _, a := range f.answers {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	f.answers = kept
	f.reset[userID] = true
	return n, nil
}

type fakeUserRepo struct {
	users map[int64]*entities.User
	err   error
}

func (f *fakeUserRepo) SaveUser(_ context.Context, u *entities.User) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, exists := f.users[u.ID]
	f.users[u.ID] = u
	return !exists, nil
}

func (f *fakeUserRepo) UserExists(_ context.Context, userID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.users[userID]
	return ok, nil
}

func sampleQuestions() []entities.Question {
	return []entities.Question{
		{SequenceID: 1, Code: "SN1-1", Category: "Slayt 1", Text: "Q1?", Options: []string{"a", "b"}, CorrectIndex: 1, Explanation: "b"},
		{SequenceID: 2, Code: "SN1-2", Category: "Slayt 1", Text: "Q2?", Options: []string{"a", "b", "c"}, CorrectIndex: 0, Explanation: "a"},
		{SequenceID: 3, Code: "SN2-1", Category: "Slayt 2", Text: "Q3?", Options: []string{"x", "y"}, CorrectIndex: 1, Explanation: "y"},
		{SequenceID: 4, Code: "", Category: "Diğer", Text: "Q4?", Options: []string{"p", "q"}, CorrectIndex: 0, Explanation: "p"},
	}
}

func sampleSource() *fakeSource {
	return &fakeSource{snap: &repository.Snapshot{
		Source:    repository.SourceDirectory,
		Documents: 3,
		Questions: sampleQuestions(),
	}}
}
