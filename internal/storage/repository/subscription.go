package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// UpsertSubscriptionByCustomer создает подписку для клиента или, если она уже есть,
// переводит ее на переданный идентификатор подписки в статусе active.
// Повторный вызов с теми же аргументами не меняет состояние.
func (s *Storage) UpsertSubscriptionByCustomer(ctx context.Context, userUID, customerID, subscriptionID string) error {
	const op = "storage.UpsertSubscriptionByCustomer"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, billing_customer_id, billing_subscription_id, status)
			  VALUES ($1, $2, $3, 'active')
			  ON CONFLICT (billing_customer_id) DO UPDATE
			  SET user_uid = EXCLUDED.user_uid,
			      billing_subscription_id = EXCLUDED.billing_subscription_id,
			      status = 'active',
			      end_date = NULL`
	if _, err := s.conn(ctx).ExecContext(ctx, query, userUID, customerID, subscriptionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscriptionByBillingID возвращает подписку по идентификатору подписки провайдера.
// Внутри транзакции строка блокируется до ее завершения.
func (s *Storage) GetSubscriptionByBillingID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByBillingID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, billing_customer_id, billing_subscription_id, status, start_date, end_date
			  FROM subscriptions
			  WHERE billing_subscription_id = $1
			  FOR UPDATE`
	var sub models.Subscription
	var endDate sql.NullTime
	err := s.conn(ctx).QueryRowContext(ctx, query, subscriptionID).Scan(
		&sub.ID, &sub.UserUID, &sub.BillingCustomerID, &sub.BillingSubscriptionID,
		&sub.Status, &sub.StartDate, &endDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endDate.Valid {
		sub.EndDate = &endDate.Time
	}
	return &sub, nil
}

// UpdateSubscriptionStatus записывает статус провайдера как есть.
// endDate фиксирует момент завершения, nil сбрасывает его.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string, endDate *time.Time) error {
	const op = "storage.UpdateSubscriptionStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = $1, end_date = $2
			  WHERE billing_subscription_id = $3`
	res, err := s.conn(ctx).ExecContext(ctx, query, status, endDate, subscriptionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOne(op, res)
}

// DeleteSubscriptionByBillingID удаляет подписку и возвращает количество удалённых строк.
func (s *Storage) DeleteSubscriptionByBillingID(ctx context.Context, subscriptionID string) (int, error) {
	const op = "storage.DeleteSubscriptionByBillingID"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE billing_subscription_id = $1`
	result, err := s.conn(ctx).ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RecordWebhookEvent добавляет событие в журнал. Возвращает false, если событие
// с таким идентификатором уже было записано.
func (s *Storage) RecordWebhookEvent(ctx context.Context, event models.WebhookEvent) (bool, error) {
	const op = "storage.RecordWebhookEvent"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO billing_webhook_events (provider_event_id, event_type, kind, outcome)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (provider_event_id) DO NOTHING`
	res, err := s.conn(ctx).ExecContext(ctx, query, event.ProviderEventID, event.EventType, event.Kind, event.Outcome)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
