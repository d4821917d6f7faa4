package models

import "time"

// WebhookEvent запись журнала принятых событий биллинга.
type WebhookEvent struct {
	ProviderEventID string
	EventType       string
	Kind            string
	Outcome         string
	ReceivedAt      time.Time
}
