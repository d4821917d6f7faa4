package models

import "time"

// Subscription хранит состояние подписки пользователя у платежного провайдера.
// Status хранится в том виде, в котором его прислал провайдер.
type Subscription struct {
	ID                    int64
	UserUID               string
	BillingCustomerID     string
	BillingSubscriptionID string
	Status                string
	StartDate             time.Time
	EndDate               *time.Time
}
