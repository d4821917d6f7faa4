// Package subscription сводит события биллинга к состоянию подписки и флагу доступа пользователя.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Edu92337/quizmaster-backend/internal/billing"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/storage/repository"
)

// Repository методы хранилища, нужные для применения событий.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByCustomerID(ctx context.Context, customerID string) (*models.User, error)
	UpsertSubscriptionByCustomer(ctx context.Context, userUID, customerID, subscriptionID string) error
	GetSubscriptionByBillingID(ctx context.Context, subscriptionID string) (*models.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string, endDate *time.Time) error
	DeleteSubscriptionByBillingID(ctx context.Context, subscriptionID string) (int, error)
	SetSubscribed(ctx context.Context, userUID string, subscribed bool) error
	RecordWebhookEvent(ctx context.Context, event models.WebhookEvent) (bool, error)
}

// Outcome результат применения события.
type Outcome string

// Возможные результаты.
const (
	OutcomeApplied Outcome = "applied"
	OutcomeNoop    Outcome = "noop"
	OutcomeIgnored Outcome = "ignored"
)

// Effect что изменилось после применения события.
type Effect struct {
	Outcome  Outcome
	UserUID  string
	Email    string
	Status   string
	Bucket   billing.Bucket
	Entitled *bool // nil, если флаг доступа не трогали
	Changed  bool  // флаг доступа отличается от прежнего
}

// Reconciler применяет события биллинга к хранилищу.
type Reconciler struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewReconciler создает Reconciler.
func NewReconciler(repo Repository, log *slog.Logger) *Reconciler {
	return &Reconciler{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Apply применяет одно событие. Изменение подписки, флага доступа и запись в журнал
// событий выполняются в одной транзакции. Повторная доставка того же события
// дает то же состояние. События применяются в порядке поступления.
func (r *Reconciler) Apply(ctx context.Context, event billing.Event) (Effect, error) {
	const op = "subscription.Apply"

	log := r.log.With(
		slog.String("op", op),
		slog.String("event_id", event.EventMeta().ID),
		slog.String("event_type", event.EventMeta().Type),
	)

	var eff Effect
	err := r.repo.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		switch e := event.(type) {
		case billing.CheckoutCompleted:
			eff, err = r.applyCheckout(ctx, log, e)
		case billing.SubscriptionUpdated:
			eff, err = r.applyUpdated(ctx, log, e)
		case billing.SubscriptionDeleted:
			eff, err = r.applyDeleted(ctx, log, e)
		default:
			eff = Effect{Outcome: OutcomeIgnored}
		}
		if err != nil {
			return err
		}

		meta := event.EventMeta()
		if _, err = r.repo.RecordWebhookEvent(ctx, models.WebhookEvent{
			ProviderEventID: meta.ID,
			EventType:       meta.Type,
			Kind:            billing.KindOf(event),
			Outcome:         string(eff.Outcome),
		}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return Effect{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("billing event applied", slog.String("outcome", string(eff.Outcome)), slog.Bool("changed", eff.Changed))
	return eff, nil
}

func (r *Reconciler) applyCheckout(ctx context.Context, log *slog.Logger, e billing.CheckoutCompleted) (Effect, error) {
	user, err := r.repo.GetUserByCustomerID(ctx, e.CustomerID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("checkout completed for unknown customer", slog.String("customer_id", e.CustomerID))
		return Effect{Outcome: OutcomeNoop}, nil
	}
	if err != nil {
		return Effect{}, err
	}

	if err = r.repo.UpsertSubscriptionByCustomer(ctx, user.UUID, e.CustomerID, e.SubscriptionID); err != nil {
		return Effect{}, err
	}
	if err = r.repo.SetSubscribed(ctx, user.UUID, true); err != nil {
		return Effect{}, err
	}

	entitled := true
	return Effect{
		Outcome:  OutcomeApplied,
		UserUID:  user.UUID,
		Email:    user.Email,
		Status:   "active",
		Bucket:   billing.BucketEntitled,
		Entitled: &entitled,
		Changed:  !user.IsSubscribed,
	}, nil
}

func (r *Reconciler) applyUpdated(ctx context.Context, log *slog.Logger, e billing.SubscriptionUpdated) (Effect, error) {
	sub, err := r.repo.GetSubscriptionByBillingID(ctx, e.SubscriptionID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("update for unknown subscription", slog.String("subscription_id", e.SubscriptionID))
		return Effect{Outcome: OutcomeNoop}, nil
	}
	if err != nil {
		return Effect{}, err
	}

	user, err := r.repo.GetUser(ctx, sub.UserUID)
	if err != nil {
		return Effect{}, err
	}

	bucket := billing.BucketOf(e.Status)
	var endDate *time.Time
	if bucket == billing.BucketTerminated {
		now := r.now()
		endDate = &now
	}
	if err = r.repo.UpdateSubscriptionStatus(ctx, e.SubscriptionID, e.Status, endDate); err != nil {
		return Effect{}, err
	}

	entitled := billing.Entitles(e.Status)
	if err = r.repo.SetSubscribed(ctx, sub.UserUID, entitled); err != nil {
		return Effect{}, err
	}

	return Effect{
		Outcome:  OutcomeApplied,
		UserUID:  user.UUID,
		Email:    user.Email,
		Status:   e.Status,
		Bucket:   bucket,
		Entitled: &entitled,
		Changed:  entitled != user.IsSubscribed,
	}, nil
}

func (r *Reconciler) applyDeleted(ctx context.Context, log *slog.Logger, e billing.SubscriptionDeleted) (Effect, error) {
	sub, err := r.repo.GetSubscriptionByBillingID(ctx, e.SubscriptionID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("delete for unknown subscription", slog.String("subscription_id", e.SubscriptionID))
		return Effect{Outcome: OutcomeNoop}, nil
	}
	if err != nil {
		return Effect{}, err
	}

	user, err := r.repo.GetUser(ctx, sub.UserUID)
	if err != nil {
		return Effect{}, err
	}

	if _, err = r.repo.DeleteSubscriptionByBillingID(ctx, e.SubscriptionID); err != nil {
		return Effect{}, err
	}
	if err = r.repo.SetSubscribed(ctx, sub.UserUID, false); err != nil {
		return Effect{}, err
	}

	entitled := false
	return Effect{
		Outcome:  OutcomeApplied,
		UserUID:  user.UUID,
		Email:    user.Email,
		Status:   "deleted",
		Bucket:   billing.BucketTerminated,
		Entitled: &entitled,
		Changed:  user.IsSubscribed,
	}, nil
}
