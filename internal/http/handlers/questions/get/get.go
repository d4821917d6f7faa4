// Package get HTTP-обработчик чтения вопроса.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/services/questions"
)

// Response вопрос без правильного ответа.
type Response struct {
	ID         int64    `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Subject    string   `json:"subject"`
	ExamType   string   `json:"exam_type"`
	Difficulty string   `json:"difficulty"`
}

// Service чтение вопроса.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Question, error)
}

// Handler обработчик.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить вопрос
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID вопроса"
// @Success 200 {object} Response
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /questions/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.questions.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("ID de questão inválido"))
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if errors.Is(err, questions.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Questão não encontrada"))
		return
	}
	if err != nil {
		log.Error("failed to get question", slog.Int64("question_id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro interno"))
		return
	}

	render.JSON(w, r, Response{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Subject:    q.Subject,
		ExamType:   q.ExamType,
		Difficulty: q.Difficulty,
	})
}
