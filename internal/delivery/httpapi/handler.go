package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aliskhannn/exam-quiz-bot/internal/service"
	"github.com/aliskhannn/exam-quiz-bot/internal/storage"
)

const clientCookie = "quiz_client"

// Error messages.
const (
	msgQuestionNotFound = "Soru bulunamadı"
	msgInvalidRequest   = "Geçersiz istek"
	msgInternalError    = "Bir şeyler ters gitti"
)

type Handler struct {
	questions QuestionService
	stats     StatsStorage
	gatherer  prometheus.Gatherer
	logger    *zap.Logger
}

func NewHandler(
	questions QuestionService,
	stats StatsStorage,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		questions: questions,
		stats:     stats,
		gatherer:  gatherer,
		logger:    logger,
	}
}

// Routes returns the API mux wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/questions", h.listQuestions)
	mux.HandleFunc("GET /api/categories", h.listCategories)
	mux.HandleFunc("POST /api/check", h.checkAnswer)
	mux.HandleFunc("POST /api/stats", h.saveStats)
	mux.HandleFunc("GET /api/stats", h.getStats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if h.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	return h.logRequests(mux)
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.questions.Categories(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type checkRequest struct {
	QuestionID *int `json:"question_id"`
	Answer     *int `json:"answer"`
}

func (h *Handler) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	// A missing answer never matches.
	answer := -1
	if req.Answer != nil {
		answer = *req.Answer
	}

	result, err := h.questions.Check(r.Context(), *req.QuestionID, answer)
	if errors.Is(err, service.ErrQuestionNotFound) {
		writeError(w, http.StatusNotFound, msgQuestionNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) saveStats(w http.ResponseWriter, r *http.Request) {
	var stats storage.ClientStats
	if err := json.NewDecoder(r.Body).Decode(&stats); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	h.stats.Store(h.clientID(w, r), stats)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, _ := h.stats.Get(h.clientID(w, r))
	writeJSON(w, http.StatusOK, stats)
}

// clientID identifies the browser by cookie, issuing one on first contact.
func (h *Handler) clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(clientCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
