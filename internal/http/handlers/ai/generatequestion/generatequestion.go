// Package generatequestion HTTP-обработчик генерации одного вопроса через ИИ.
package generatequestion

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// Request параметры генерации.
type Request struct {
	Prompt   string `json:"prompt" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	ExamType string `json:"exam_type" validate:"required"`
}

// Response созданный вопрос.
type Response struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Generator пакетная генерация вопросов.
type Generator interface {
	GenerateBatch(ctx context.Context, userUID, subject, examType, prompt string, count int) ([]models.Question, error)
}

// Handler обработчик.
type Handler struct {
	log       *slog.Logger
	generator Generator
	validate  *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, generator Generator) *Handler {
	return &Handler{
		log:       log,
		generator: generator,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сгенерировать вопрос через ИИ
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Промпт, предмет и тип экзамена"
// @Success 200 {object} Response
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /ai/generate_question_ia [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.generatequestion"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Corpo da requisição inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, _ := middlewarectx.UserUIDFrom(r.Context())
	created, err := h.generator.GenerateBatch(r.Context(), userUID, req.Subject, req.ExamType, req.Prompt, 1)
	if err != nil || len(created) == 0 {
		log.Error("question generation failed", slog.Int("created", len(created)), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro ao gerar questão com IA"))
		return
	}

	q := created[0]
	render.JSON(w, r, Response{ID: q.ID, Text: q.Text, Options: q.Options})
}
