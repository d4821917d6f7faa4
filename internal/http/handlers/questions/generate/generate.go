// Package generate HTTP-обработчик выдачи или генерации пакета вопросов.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/services/questions"
)

// Request тело запроса. NumQuestions и PromptIA необязательны.
type Request struct {
	Subject      string `json:"subject"`
	ExamType     string `json:"exam_type"`
	NumQuestions *int   `json:"num_questions,omitempty"`
	PromptIA     string `json:"prompt_ia,omitempty"`
}

// Item вопрос в ответе, без правильного ответа.
type Item struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Service выдача вопросов.
type Service interface {
	RequestGeneration(ctx context.Context, userUID string, req questions.GenerationRequest) ([]models.Question, error)
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
// @Summary Получить или сгенерировать вопросы
// @Description С непустым prompt_ia вопросы генерируются через ИИ, иначе выбираются из банка.
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Параметры пакета"
// @Success 200 {array} Item
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /questions/generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.questions.generate"

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

	userUID, _ := middlewarectx.UserUIDFrom(r.Context())
	found, err := h.service.RequestGeneration(r.Context(), userUID, questions.GenerationRequest{
		Subject:  req.Subject,
		ExamType: req.ExamType,
		Count:    req.NumQuestions,
		Prompt:   req.PromptIA,
	})
	switch {
	case errors.Is(err, questions.ErrMissingField):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Assunto e tipo de prova são obrigatórios"))
		return
	case errors.Is(err, questions.ErrInvalidCount):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Número de questões inválido"))
		return
	case errors.Is(err, questions.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Nenhuma questão encontrada para os critérios especificados."))
		return
	case err != nil:
		log.Error("failed to provide questions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro ao gerar questões"))
		return
	}

	items := make([]Item, 0, len(found))
	for _, q := range found {
		items = append(items, Item{ID: q.ID, Text: q.Text, Options: q.Options})
	}
	log.Debug("questions served", slog.Int("count", len(items)), slog.Bool("generated", req.PromptIA != ""))
	render.JSON(w, r, items)
}
