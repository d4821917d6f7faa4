// Package sender приложение, которое читает очередь уведомлений и отправляет письма.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Edu92337/quizmaster-backend/internal/config"
	"github.com/Edu92337/quizmaster-backend/internal/lib/rabbitmq"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/lib/smtp"
	"github.com/Edu92337/quizmaster-backend/internal/services/notification"
)

// App потребитель очереди notifications.entitlement.
type App struct {
	conn                *amqp.Connection
	ch                  *amqp.Channel
	notificationService *notification.Service
	logger              *slog.Logger
}

// New подключается к брокеру и объявляет очереди уведомлений.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	mailer := smtp.NewMailer(smtp.NewTransport(cfg.SMTP, logger))

	return &App{
		conn:                conn,
		ch:                  ch,
		notificationService: notification.NewService(mailer, logger),
		logger:              logger,
	}, nil
}

// Run обрабатывает сообщения до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.EntitlementQueue, a.notificationService.HandleEntitlementChanged)
	if err != nil {
		a.logger.Error("failed to start entitlement consumer", sl.Err(err))
		return err
	}
	a.logger.Info("sender consuming", slog.String("queue", rabbitmq.EntitlementQueue))

	<-ctx.Done()
	a.logger.Info("sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
