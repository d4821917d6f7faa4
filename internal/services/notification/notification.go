// Package notification отправляет письма об изменении доступа к платным функциям.
package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Edu92337/quizmaster-backend/internal/lib/rabbitmq"
	"github.com/Edu92337/quizmaster-backend/internal/lib/smtp"
	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// ErrNoRecipient в сообщении нет адреса получателя.
var ErrNoRecipient = errors.New("entitlement message has no email")

// Mailer отправка письма.
type Mailer interface {
	Send(msg smtp.Message) error
}

// Service обрабатывает сообщения очереди уведомлений.
type Service struct {
	mailer Mailer
	log    *slog.Logger
}

// NewService создает Service.
func NewService(mailer Mailer, log *slog.Logger) *Service {
	return &Service{mailer: mailer, log: log}
}

// HandleEntitlementChanged декодирует сообщение из очереди и отправляет письмо.
// Некорректные сообщения помечаются rabbitmq.ErrDiscard, ошибки отправки нет.
func (s *Service) HandleEntitlementChanged(body []byte) error {
	const op = "notification.HandleEntitlementChanged"

	var msg models.EntitlementChanged
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: %w: %w", op, rabbitmq.ErrDiscard, err)
	}
	if msg.Email == "" {
		return fmt.Errorf("%s: %w: %w", op, rabbitmq.ErrDiscard, ErrNoRecipient)
	}

	if err := s.mailer.Send(Compose(msg)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("entitlement email sent",
		slog.String("user_uid", msg.UserUID), slog.Bool("entitled", msg.Entitled), slog.String("status", msg.Status))
	return nil
}

// Compose формирует письмо для пользователя.
func Compose(msg models.EntitlementChanged) smtp.Message {
	if msg.Entitled {
		return smtp.Message{
			To:      []string{msg.Email},
			Subject: "Sua assinatura está ativa",
			Body: "Olá!\n\nSua assinatura foi confirmada. A geração de questões com IA e o chat " +
				"de estudos já estão liberados.\n\nBons estudos!",
		}
	}
	return smtp.Message{
		To:      []string{msg.Email},
		Subject: "Sua assinatura foi suspensa",
		Body: fmt.Sprintf("Olá!\n\nO acesso aos recursos de IA foi suspenso (status: %s). "+
			"Para voltar a usar, renove a assinatura na sua conta.", msg.Status),
	}
}
