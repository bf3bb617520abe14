package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/exam-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionQuiz:
		h.handleQuizCallback(ctx, cb, data)

	case actionCategories:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handleCategories())(ctx, chatID)

	case actionStats:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handleStats(cb.From.ID))(ctx, chatID)

	default:
		h.logger.Warn("unknown callback action", zap.String("data", data.Raw))
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID
	if len(data.Params) == 0 {
		h.answerCallback(cb.ID, "")
		return
	}

	switch data.Params[0] {
	case quizStart:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handleQuizStartCallback(cb.From.ID, data.Params[1:]))(ctx, chatID)

	case quizAnswer:
		params, err := parseAnswerParams(data.Params[1:])
		if err != nil {
			h.logger.Warn("malformed answer callback", zap.String("data", data.Raw))
			h.answerCallback(cb.ID, "")
			return
		}
		_ = h.withErrorHandling(h.handleQuizAnswer(cb, params))(ctx, chatID)

	default:
		h.answerCallback(cb.ID, "")
	}
}

// handleQuizStartCallback starts a quiz over all questions, or over the
// category chosen from the categories keyboard.
func (h *Handler) handleQuizStartCallback(userID int64, params []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(params) == 0 {
			return h.startQuiz(ctx, chatID, userID, "")
		}

		idx, err := strconv.Atoi(params[0])
		if err != nil {
			return errMalformedCallback
		}

		categories, err := h.questionService.Categories(ctx)
		if err != nil {
			return err
		}
		// The document set may have changed since the keyboard was sent.
		if idx < 0 || idx >= len(categories) {
			return h.send(newPlainMessage(chatID, msgUnknownCategory))
		}

		return h.startQuiz(ctx, chatID, userID, categories[idx].Name)
	}
}

// handleQuizAnswer grades a pressed answer button, replaces the question
// with feedback, then sends the next question or the result.
func (h *Handler) handleQuizAnswer(cb *tgbotapi.CallbackQuery, p answerParams) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		userID := cb.From.ID

		q, ok := h.quizStorage.Question(p.sessionID, p.questionNum)
		if !ok {
			h.answerCallback(cb.ID, msgQuizExpired)
			return nil
		}

		session, err := h.quizService.GetSession(ctx, p.sessionID)
		if err != nil {
			h.answerCallback(cb.ID, msgQuizExpired)
			return err
		}
		if !session.IsActive() {
			h.quizStorage.Delete(session.ID)
			h.answerCallback(cb.ID, msgQuizExpired)
			return nil
		}
		if session.CurrentQuestionNum != p.questionNum {
			h.answerCallback(cb.ID, msgAlreadyAnswered)
			return nil
		}

		answer, session, err := h.quizService.SubmitAnswer(ctx, userID, p.sessionID, q, p.answerIndex)
		switch {
		case errors.Is(err, service.ErrSessionNotActive), errors.Is(err, service.ErrForeignSession):
			h.answerCallback(cb.ID, msgQuizExpired)
			return nil
		case errors.Is(err, service.ErrAnswerConflict):
			h.answerCallback(cb.ID, msgAlreadyAnswered)
			return nil
		case errors.Is(err, service.ErrInvalidAnswer):
			h.answerCallback(cb.ID, "")
			return nil
		case err != nil:
			h.answerCallback(cb.ID, "")
			return err
		}

		h.answerCallback(cb.ID, "")

		h.logger.Debug("quiz answer submitted",
			zap.Int64("session_id", session.ID),
			zap.Int("question_num", p.questionNum),
			zap.Bool("correct", answer.IsCorrect),
		)

		text := formatQuizQuestion(q, p.questionNum, session.TotalQuestions) + "\n\n" + formatAnswerFeedback(q, answer)
		if err := h.send(newEdit(chatID, cb.Message.MessageID, text)); err != nil {
			return err
		}

		if session.IsActive() {
			next, ok := h.quizStorage.Question(session.ID, session.CurrentQuestionNum)
			if !ok {
				return h.send(newPlainMessage(chatID, msgQuizExpired))
			}
			return h.sendQuizQuestion(chatID, session, next)
		}

		h.quizStorage.Delete(session.ID)

		msg := newMessage(chatID, formatQuizResult(session))
		msg.ReplyMarkup = buildQuizResultKeyboard()
		return h.send(msg)
	}
}
