// Package read HTTP-обработчик чтения прогресса пользователя.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/services/progress"
)

// Service чтение прогресса.
type Service interface {
	ForUser(ctx context.Context, callerUID, userUID string) ([]progress.Entry, error)
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
// @Summary Прогресс пользователя
// @Description Дневные записи за последний год по возрастанию даты. Доступен только самому пользователю.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "UID пользователя"
// @Success 200 {array} progress.Entry
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /progress/{user_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "user_id")
	if _, err := uuid.Parse(userUID); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("ID de usuário inválido"))
		return
	}

	callerUID, _ := middlewarectx.UserUIDFrom(r.Context())
	entries, err := h.service.ForUser(r.Context(), callerUID, userUID)
	if errors.Is(err, progress.ErrForbidden) {
		log.Warn("progress access denied", slog.String("caller_uid", callerUID), slog.String("user_uid", userUID))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("Acesso não autorizado"))
		return
	}
	if err != nil {
		log.Error("failed to read progress", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro ao carregar progresso"))
		return
	}

	render.JSON(w, r, entries)
}
