package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

var (
	// ErrVerification общий класс ошибок проверки входящего вебхука.
	ErrVerification = errors.New("webhook verification failed")
	// ErrInvalidSignature подпись отсутствует, не разбирается, не совпадает или устарела.
	ErrInvalidSignature = fmt.Errorf("%w: invalid signature", ErrVerification)
	// ErrMalformedPayload тело не удалось декодировать или в нем нет обязательных полей.
	ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrVerification)
)

// Типы событий Stripe, которые обрабатывает сервис.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventSubscriptionUpdated      = "customer.subscription.updated"
	EventSubscriptionDeleted      = "customer.subscription.deleted"
)

// Normalizer проверяет и декодирует вебхуки одного endpoint.
type Normalizer struct {
	secret    string
	tolerance time.Duration
}

// NewNormalizer создает Normalizer с секретом endpoint и стандартным окном допуска по времени.
func NewNormalizer(secret string) *Normalizer {
	return &Normalizer{secret: secret, tolerance: webhook.DefaultTolerance}
}

// Normalize проверяет подпись и возвращает доменное событие.
func (n *Normalizer) Normalize(payload []byte, signatureHeader string) (Event, error) {
	return normalize(payload, signatureHeader, n.secret, n.tolerance)
}

// Normalize проверяет подпись payload секретом endpoint и возвращает доменное событие.
// Функция не имеет побочных эффектов.
func Normalize(payload []byte, signatureHeader, endpointSecret string) (Event, error) {
	return normalize(payload, signatureHeader, endpointSecret, webhook.DefaultTolerance)
}

func normalize(payload []byte, signatureHeader, secret string, tolerance time.Duration) (Event, error) {
	const op = "billing.Normalize"

	raw, err := webhook.ConstructEventWithOptions(payload, signatureHeader, secret, webhook.ConstructEventOptions{
		Tolerance:                tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedPayload, err)
	}

	meta := Meta{
		ID:      raw.ID,
		Type:    string(raw.Type),
		Created: time.Unix(raw.Created, 0).UTC(),
	}
	if meta.ID == "" || meta.Type == "" {
		return nil, fmt.Errorf("%s: %w: event id or type missing", op, ErrMalformedPayload)
	}

	switch meta.Type {
	case EventCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := decodeObject(raw, &sess); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sess.Subscription == nil || sess.Subscription.ID == "" {
			return Ignored{Meta: meta}, nil
		}
		if sess.Customer == nil || sess.Customer.ID == "" {
			return nil, fmt.Errorf("%s: %w: checkout session without customer", op, ErrMalformedPayload)
		}
		return CheckoutCompleted{
			Meta:           meta,
			CustomerID:     sess.Customer.ID,
			SubscriptionID: sess.Subscription.ID,
		}, nil

	case EventSubscriptionUpdated:
		var sub stripe.Subscription
		if err := decodeObject(raw, &sub); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sub.ID == "" || sub.Status == "" {
			return nil, fmt.Errorf("%s: %w: subscription id or status missing", op, ErrMalformedPayload)
		}
		return SubscriptionUpdated{
			Meta:           meta,
			SubscriptionID: sub.ID,
			Status:         string(sub.Status),
		}, nil

	case EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := decodeObject(raw, &sub); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sub.ID == "" {
			return nil, fmt.Errorf("%s: %w: subscription id missing", op, ErrMalformedPayload)
		}
		return SubscriptionDeleted{
			Meta:           meta,
			SubscriptionID: sub.ID,
		}, nil

	default:
		return Ignored{Meta: meta}, nil
	}
}

func decodeObject(raw stripe.Event, dst any) error {
	if raw.Data == nil || len(raw.Data.Raw) == 0 {
		return fmt.Errorf("%w: event data missing", ErrMalformedPayload)
	}
	if err := json.Unmarshal(raw.Data.Raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}
