// Package billing отвечает за границу с платежным провайдером: проверяет подпись
// вебхуков Stripe и приводит их к закрытому набору доменных событий, классифицирует
// статусы подписки и создает клиентов и checkout-сессии.
package billing

import "time"

// Meta общие поля любого события провайдера.
type Meta struct {
	ID      string
	Type    string
	Created time.Time
}

// EventMeta возвращает общие поля события.
func (m Meta) EventMeta() Meta { return m }

func (Meta) event() {}

// Event закрытое объединение нормализованных событий биллинга.
// Реализации: CheckoutCompleted, SubscriptionUpdated, SubscriptionDeleted, Ignored.
type Event interface {
	EventMeta() Meta
	event()
}

// CheckoutCompleted пользователь завершил оформление подписки.
type CheckoutCompleted struct {
	Meta
	CustomerID     string
	SubscriptionID string
}

// SubscriptionUpdated провайдер изменил статус подписки.
type SubscriptionUpdated struct {
	Meta
	SubscriptionID string
	Status         string
}

// SubscriptionDeleted подписка удалена на стороне провайдера.
type SubscriptionDeleted struct {
	Meta
	SubscriptionID string
}

// Ignored событие, которое сервис не обрабатывает.
type Ignored struct {
	Meta
}

// Виды событий для журнала и метрик.
const (
	KindCheckoutCompleted   = "checkout_completed"
	KindSubscriptionUpdated = "subscription_updated"
	KindSubscriptionDeleted = "subscription_deleted"
	KindIgnored             = "ignored"
)

// KindOf возвращает вид события.
func KindOf(e Event) string {
	switch e.(type) {
	case CheckoutCompleted:
		return KindCheckoutCompleted
	case SubscriptionUpdated:
		return KindSubscriptionUpdated
	case SubscriptionDeleted:
		return KindSubscriptionDeleted
	default:
		return KindIgnored
	}
}
