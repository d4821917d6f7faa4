// Package answer HTTP-обработчик проверки ответа на вопрос.
package answer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/services/questions"
)

// Request тело запроса.
type Request struct {
	Answer string `json:"answer" validate:"required"`
}

// Response результат проверки.
type Response struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// Service проверка ответа.
type Service interface {
	Answer(ctx context.Context, userUID string, id int64, answer string) (questions.AnswerResult, error)
}

// Handler обработчик.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Ответить на вопрос
// @Description Проверяет ответ и обновляет дневной прогресс пользователя.
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID вопроса"
// @Param request body Request true "Ответ"
// @Success 200 {object} Response
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /questions/{id}/answer [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.questions.answer"

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

	var req Request
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Corpo da requisição inválido"))
		return
	}
	if err = h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, _ := middlewarectx.UserUIDFrom(r.Context())
	res, err := h.service.Answer(r.Context(), userUID, id, req.Answer)
	if errors.Is(err, questions.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Questão não encontrada"))
		return
	}
	if err != nil {
		log.Error("failed to record answer", slog.Int64("question_id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro ao registrar resposta"))
		return
	}

	render.JSON(w, r, Response{IsCorrect: res.IsCorrect, CorrectAnswer: res.CorrectAnswer})
}
