package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/parser"
	"github.com/aliskhannn/exam-quiz-bot/internal/service"
)

// handleQuiz resumes the running quiz of the user or starts a new one.
// args may name a category, or give a slide number.
func (h *Handler) handleQuiz(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args = strings.TrimSpace(args)

		if args == "" {
			resumed, err := h.resumeQuiz(ctx, chatID, userID)
			if err != nil || resumed {
				return err
			}
		}

		category := ""
		if args != "" {
			categories, err := h.questionService.Categories(ctx)
			if err != nil {
				h.logger.Error("failed to list categories",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return h.send(newPlainMessage(chatID, msgQuizUnavailable))
			}

			var ok bool
			category, ok = resolveCategory(categories, args)
			if !ok {
				return h.send(newPlainMessage(chatID, msgUnknownCategory))
			}
		}

		return h.startQuiz(ctx, chatID, userID, category)
	}
}

// resumeQuiz re-sends the current question of an active session. It reports
// false when there is nothing to resume, e.g. after a restart dropped the
// in-memory question list.
func (h *Handler) resumeQuiz(ctx context.Context, chatID, userID int64) (bool, error) {
	session, err := h.quizService.GetActiveSession(ctx, userID)
	if err != nil {
		h.logger.Error("failed to get active session",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return true, h.send(newPlainMessage(chatID, msgQuizUnavailable))
	}
	if session == nil {
		return false, nil
	}

	q, ok := h.quizStorage.Question(session.ID, session.CurrentQuestionNum)
	if !ok {
		return false, nil
	}

	h.logger.Debug("resuming quiz session",
		zap.Int64("session_id", session.ID),
		zap.Int("question_num", session.CurrentQuestionNum),
	)

	if err := h.send(newMessage(chatID, md("📝 Quiz devam ediyor..."))); err != nil {
		return true, err
	}
	return true, h.sendQuizQuestion(chatID, session, q)
}

func (h *Handler) startQuiz(ctx context.Context, chatID, userID int64, category string) error {
	// StartQuiz abandons the running session, so its questions can go.
	if prev, err := h.quizService.GetActiveSession(ctx, userID); err == nil && prev != nil {
		h.quizStorage.Delete(prev.ID)
	}

	session, questions, err := h.quizService.StartQuiz(ctx, userID, category)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsAvailable) {
			return h.send(newPlainMessage(chatID, msgNoAvailableQuestions))
		}
		h.logger.Error("failed to start quiz session",
			zap.Int64("user_id", userID),
			zap.String("category", category),
			zap.Error(err),
		)
		return h.send(newPlainMessage(chatID, msgQuizUnavailable))
	}

	h.logger.Debug("quiz session created",
		zap.Int64("session_id", session.ID),
		zap.String("category", category),
		zap.Int("questions", len(questions)),
	)

	h.quizStorage.Store(session.ID, questions)

	if err := h.send(newMessage(chatID, buildQuizStartMessage(category, session.TotalQuestions))); err != nil {
		return err
	}

	return h.sendQuizQuestion(chatID, session, &questions[0])
}

// sendQuizQuestion sends the current question of session with answer buttons.
func (h *Handler) sendQuizQuestion(chatID int64, session *entities.QuizSession, q *entities.Question) error {
	msg := newMessage(chatID, formatQuizQuestion(q, session.CurrentQuestionNum, session.TotalQuestions))
	msg.ReplyMarkup = buildQuizAnswerKeyboard(q, session.ID, session.CurrentQuestionNum)

	sent, err := h.sendMessage(msg)
	if err != nil {
		return err
	}

	h.quizStorage.SetMessageID(session.ID, sent.MessageID)
	return nil
}

func (h *Handler) handleCategories() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		categories, err := h.questionService.Categories(ctx)
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			return h.send(newPlainMessage(chatID, msgNoAvailableQuestions))
		}

		msg := newMessage(chatID, formatCategories(categories))
		msg.ReplyMarkup = buildCategoriesKeyboard(categories)
		return h.send(msg)
	}
}

func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.quizService.Stats(ctx, userID)
		if err != nil {
			h.logger.Error("failed to get stats",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgStatsUnavailable))
		}

		msg := newMessage(chatID, formatStats(stats))
		msg.ReplyMarkup = buildQuizResultKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleReset(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		activeSessionID, err := h.resetService.ResetUser(ctx, userID)
		if err != nil {
			return err
		}
		if activeSessionID != 0 {
			h.quizStorage.Delete(activeSessionID)
		}

		h.logger.Info("user history reset", zap.Int64("user_id", userID))
		return h.send(newPlainMessage(chatID, msgResetDone))
	}
}

// resolveCategory matches arg against category names, ignoring case. A bare
// number selects the slide category with that number.
func resolveCategory(categories []service.CategoryCount, arg string) (string, bool) {
	name := arg
	if n, err := strconv.Atoi(arg); err == nil {
		name = parser.SlideCategory(n)
	}

	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.Name, true
		}
	}
	return "", false
}
