// Package chat HTTP-обработчик диалога с учебным ассистентом.
package chat

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
)

// Request сообщение пользователя.
type Request struct {
	Message string `json:"message" validate:"required"`
}

// Response ответ ассистента.
type Response struct {
	Response string `json:"response"`
}

// Service диалог с моделью.
type Service interface {
	Reply(ctx context.Context, userUID, message string) (string, error)
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
// @Summary Чат с ИИ
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Сообщение"
// @Success 200 {object} Response
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /ai/chat [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.chat"

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
	reply, err := h.service.Reply(r.Context(), userUID, req.Message)
	if err != nil {
		log.Error("chat failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro ao conversar com IA"))
		return
	}

	render.JSON(w, r, Response{Response: reply})
}
