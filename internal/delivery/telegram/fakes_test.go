package telegram

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/service"
	"github.com/aliskhannn/exam-quiz-bot/internal/storage"
)

type fakeBot struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	callbacks []tgbotapi.CallbackConfig
	nextID    int
	updates   chan tgbotapi.Update
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update)}
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		b.callbacks = append(b.callbacks, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

// texts returns the text of every sent message and edit.
func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, c := range b.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

func (b *fakeBot) last() tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return nil
	}
	return b.sent[len(b.sent)-1]
}

func (b *fakeBot) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = nil
	b.callbacks = nil
}

type fakeUserService struct {
	calls int
}

func (f *fakeUserService) EnsureUser(context.Context, int64, int64) (bool, error) {
	f.calls++
	return f.calls == 1, nil
}

type fakeQuestionService struct {
	categories []service.CategoryCount
}

func (f *fakeQuestionService) Categories(context.Context) ([]service.CategoryCount, error) {
	return f.categories, nil
}

// fakeQuizService keeps sessions in memory and serves a fixed question list.
type fakeQuizService struct {
	questions []entities.Question
	sessions  map[int64]*entities.QuizSession
	nextID    int64
	answers   []entities.QuizAnswer
	conflict  bool
}

func newFakeQuizService(questions []entities.Question) *fakeQuizService {
	return &fakeQuizService{
		questions: questions,
		sessions:  make(map[int64]*entities.QuizSession),
	}
}

func (f *fakeQuizService) StartQuiz(_ context.Context, userID int64, category string) (*entities.QuizSession, []entities.Question, error) {
	var selected []entities.Question
	for _, q := range f.questions {
		if category == "" || q.Category == category {
			selected = append(selected, q)
		}
	}
	if len(selected) == 0 {
		return nil, nil, service.ErrNoQuestionsAvailable
	}

	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive() {
			s.SessionStatus = entities.SessionAbandoned
		}
	}

	f.nextID++
	s := entities.NewQuizSession(userID, len(selected), category)
	s.ID = f.nextID
	f.sessions[s.ID] = s

	out := *s
	return &out, selected, nil
}

func (f *fakeQuizService) GetActiveSession(_ context.Context, userID int64) (*entities.QuizSession, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive() {
			out := *s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeQuizService) GetSession(_ context.Context, sessionID int64) (*entities.QuizSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("quiz session not found")
	}
	out := *s
	return &out, nil
}

func (f *fakeQuizService) SubmitAnswer(
	_ context.Context, userID, sessionID int64, q *entities.Question, selected int,
) (*entities.QuizAnswer, *entities.QuizSession, error) {
	if selected < 0 || selected >= len(q.Options) {
		return nil, nil, service.ErrInvalidAnswer
	}
	if f.conflict {
		return nil, nil, service.ErrAnswerConflict
	}
	s, ok := f.sessions[sessionID]
	if !ok || !s.IsActive() {
		return nil, nil, service.ErrSessionNotActive
	}
	if s.UserID != userID {
		return nil, nil, service.ErrForeignSession
	}

	a := entities.NewQuizAnswer(userID, sessionID, q, selected)
	f.answers = append(f.answers, *a)
	s.Advance(a.IsCorrect)

	out := *s
	return a, &out, nil
}

func (f *fakeQuizService) Stats(_ context.Context, userID int64) (entities.AnswerStats, error) {
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

type fakeResetService struct {
	quiz *fakeQuizService
}

func (f *fakeResetService) ResetUser(ctx context.Context, userID int64) (int64, error) {
	var active int64
	if s, _ := f.quiz.GetActiveSession(ctx, userID); s != nil {
		active = s.ID
	}
	for id, s := range f.quiz.sessions {
		if s.UserID == userID {
			delete(f.quiz.sessions, id)
		}
	}
	f.quiz.answers = nil
	return active, nil
}

type testEnv struct {
	handler *Handler
	bot     *fakeBot
	quiz    *fakeQuizService
	storage *storage.QuizStorage
}

func newTestEnv() *testEnv {
	questions := []entities.Question{
		{SequenceID: 1, Code: "SN1-1", Category: "Slayt 1", Text: "Birinci soru", Options: []string{"bir", "iki"}, CorrectIndex: 1, Explanation: "Doğru cevap: B"},
		{SequenceID: 2, Code: "SN2-1", Category: "Slayt 2", Text: "İkinci soru", Options: []string{"evet", "hayır", "belki"}, CorrectIndex: 0, Explanation: "Doğru cevap: A"},
	}
	categories := []service.CategoryCount{{Name: "Slayt 1", Count: 1}, {Name: "Slayt 2", Count: 1}}

	bot := newFakeBot()
	quiz := newFakeQuizService(questions)
	quizStorage := storage.NewQuizStorage()

	h := NewHandler(
		bot,
		zap.NewNop(),
		&fakeUserService{},
		&fakeQuestionService{categories: categories},
		quiz,
		&fakeResetService{quiz: quiz},
		quizStorage,
	)

	return &testEnv{handler: h, bot: bot, quiz: quiz, storage: quizStorage}
}
