// Package models содержит доменные структуры сервиса: пользователя, подписку,
// вопросы, взаимодействия с ИИ, дневной прогресс и журнал вебхуков.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID             string    // Уникальный идентификатор пользователя
	Email            string    // Электронная почта (уникальная)
	PasswordHash     string    // Хэш пароля пользователя
	IsSubscribed     bool      // Флаг доступа, меняется только при обработке событий биллинга
	StripeCustomerID *string   // Идентификатор клиента в Stripe, nil до первого checkout
	CreatedAt        time.Time // Дата регистрации
}
