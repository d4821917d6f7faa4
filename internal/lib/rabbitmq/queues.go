package rabbitmq

// QueueConfig очередь и ключ маршрутизации в exchange уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Очередь изменений доступа пользователя.
const (
	EntitlementQueue      = "notifications.entitlement"
	EntitlementRoutingKey = "entitlement"
)

// GetNotificationQueues очереди, которые объявляют издатель и потребитель уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: EntitlementQueue, RoutingKey: EntitlementRoutingKey},
	}
}
