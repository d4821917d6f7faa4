package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
)

// ErrDiscard оборачивается handler для сообщений, которые нельзя обработать повторно.
var ErrDiscard = errors.New("discard message")

// ConsumerMessage запускает потребителя очереди. Сообщения обрабатываются параллельно,
// не более 10 одновременно. Ошибка handler возвращает сообщение в очередь,
// кроме ошибок с ErrDiscard: такие сообщения удаляются.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, 10)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(delivery amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(delivery.Body); err != nil {
						requeue := !errors.Is(err, ErrDiscard)
						log.Error("failed to handle message",
							slog.String("queue", queueName), slog.Bool("requeue", requeue), sl.Err(err))
						if nackErr := delivery.Nack(false, requeue); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := delivery.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
