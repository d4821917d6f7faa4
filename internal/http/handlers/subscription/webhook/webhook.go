// Package webhook принимает вебхуки платежного провайдера.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Edu92337/quizmaster-backend/internal/billing"
	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/services/subscription"
)

// MaxBodyBytes ограничение размера тела вебхука.
const MaxBodyBytes = 65536

// SignatureHeader заголовок с подписью Stripe.
const SignatureHeader = "Stripe-Signature"

// Service обработка вебхука.
type Service interface {
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (subscription.Effect, error)
}

// Handler обработчик вебхука.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Вебхук Stripe
// @Description Проверяет подпись и применяет событие подписки. Ошибки возвращаются простым текстом.
// @Tags Subscription
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Подпись вебхука"
// @Success 200 {object} response.Status
// @Failure 400 {string} string "Invalid signature"
// @Failure 500 {string} string "Internal error"
// @Router /subscription/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		log.Warn("failed to read webhook body", sl.Err(err))
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	eff, err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader))
	switch {
	case errors.Is(err, billing.ErrInvalidSignature):
		log.Warn("webhook signature rejected", sl.Err(err))
		http.Error(w, "Invalid signature", http.StatusBadRequest)
		return
	case errors.Is(err, billing.ErrVerification):
		log.Warn("webhook payload rejected", sl.Err(err))
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	case err != nil:
		log.Error("failed to apply webhook event", sl.Err(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	log.Debug("webhook processed", slog.String("outcome", string(eff.Outcome)))
	render.JSON(w, r, response.OK(response.StatusSuccess))
}
