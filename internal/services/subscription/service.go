package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Edu92337/quizmaster-backend/internal/billing"
	"github.com/Edu92337/quizmaster-backend/internal/lib/rabbitmq"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/metrics"
	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// Normalizer проверяет подпись вебхука и декодирует событие.
type Normalizer interface {
	Normalize(payload []byte, signatureHeader string) (billing.Event, error)
}

// Notifier публикует уведомления после фиксации изменений.
type Notifier interface {
	Publish(routingKey string, message any) error
}

// Service обрабатывает входящие вебхуки биллинга.
type Service struct {
	normalizer Normalizer
	reconciler *Reconciler
	notifier   Notifier
	metrics    *metrics.Metrics
	log        *slog.Logger
}

// NewService создает Service. notifier может быть nil, тогда уведомления не отправляются.
func NewService(normalizer Normalizer, reconciler *Reconciler, notifier Notifier, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		normalizer: normalizer,
		reconciler: reconciler,
		notifier:   notifier,
		metrics:    m,
		log:        log,
	}
}

// HandleWebhook проверяет, применяет и учитывает одно событие. Ошибки проверки
// оборачивают billing.ErrVerification и не меняют состояние.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (Effect, error) {
	const op = "subscription.HandleWebhook"

	event, err := s.normalizer.Normalize(payload, signatureHeader)
	if err != nil {
		s.metrics.WebhookEvent("unverified", "rejected")
		return Effect{}, fmt.Errorf("%s: %w", op, err)
	}

	kind := billing.KindOf(event)
	eff, err := s.reconciler.Apply(ctx, event)
	if err != nil {
		s.metrics.WebhookEvent(kind, "failed")
		return Effect{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.WebhookEvent(kind, string(eff.Outcome))

	if eff.Changed && eff.Entitled != nil && s.notifier != nil {
		msg := models.EntitlementChanged{
			UserUID:  eff.UserUID,
			Email:    eff.Email,
			Entitled: *eff.Entitled,
			Status:   eff.Status,
		}
		if err := s.notifier.Publish(rabbitmq.EntitlementRoutingKey, msg); err != nil {
			s.log.Warn("failed to publish entitlement change",
				slog.String("op", op), slog.String("user_uid", eff.UserUID), sl.Err(err))
		}
	}
	return eff, nil
}
