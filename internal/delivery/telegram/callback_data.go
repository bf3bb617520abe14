package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz       = "quiz"
	actionCategories = "categories"
	actionStats      = "stats"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizAnswer = "answer"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizStartCallback starts a quiz over all questions, or over the
// category at position categoryIdx of the category list when given.
func buildQuizStartCallback(categoryIdx ...int) string {
	params := []string{quizStart}
	if len(categoryIdx) > 0 {
		params = append(params, strconv.Itoa(categoryIdx[0]))
	}
	return callbackData{Action: actionQuiz, Params: params}.encode()
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
func buildQuizAnswerCallback(sessionID int64, questionNum, answerIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			quizAnswer,
			strconv.FormatInt(sessionID, 10),
			strconv.Itoa(questionNum),
			strconv.Itoa(answerIndex),
		},
	}.encode()
}

func buildCategoriesCallback() string {
	return actionCategories
}

func buildStatsCallback() string {
	return actionStats
}

type answerParams struct {
	sessionID   int64
	questionNum int
	answerIndex int
}

// parseAnswerParams reads the params of a quiz answer callback (after the sub-action).
func parseAnswerParams(params []string) (answerParams, error) {
	if len(params) != 3 {
		return answerParams{}, errMalformedCallback
	}

	sessionID, err1 := strconv.ParseInt(params[0], 10, 64)
	questionNum, err2 := strconv.Atoi(params[1])
	answerIndex, err3 := strconv.Atoi(params[2])
	if err1 != nil || err2 != nil || err3 != nil || questionNum < 1 || answerIndex < 0 {
		return answerParams{}, errMalformedCallback
	}

	return answerParams{
		sessionID:   sessionID,
		questionNum: questionNum,
		answerIndex: answerIndex,
	}, nil
}
