// Package checkout HTTP-обработчик создания checkout-сессии.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	checkoutsvc "github.com/Edu92337/quizmaster-backend/internal/services/checkout"
)

// Response ссылка на страницу оплаты.
type Response struct {
	CheckoutURL string `json:"checkout_url"`
}

// Service создание сессии оплаты.
type Service interface {
	CreateSession(ctx context.Context, userUID string) (string, error)
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
// @Summary Создать checkout-сессию
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /subscription/create-checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, _ := middlewarectx.UserUIDFrom(r.Context())
	url, err := h.service.CreateSession(r.Context(), userUID)
	switch {
	case errors.Is(err, checkoutsvc.ErrUserNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Usuário não encontrado"))
		return
	case errors.Is(err, checkoutsvc.ErrProvider):
		log.Error("billing provider rejected checkout", sl.Err(err))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("Não foi possível iniciar o pagamento"))
		return
	case err != nil:
		log.Error("failed to create checkout session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro interno"))
		return
	}

	render.JSON(w, r, Response{CheckoutURL: url})
}
