package rabbitmq

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openChannel(t *testing.T) *amqp.Channel {
	t.Helper()
	conn, err := Connect(brokerURI(t), 3, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func TestPublishMessage(t *testing.T) {
	ch := openChannel(t)

	queueName := "publish-test"
	_, err := ch.QueueDeclare(queueName, false, false, false, false, nil)
	require.NoError(t, err)

	type TestMsg struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	t.Run("success publish and consume", func(t *testing.T) {
		msg := TestMsg{ID: 1, Name: "Hello"}

		err := PublishMessage(ch, "", queueName, msg)
		require.NoError(t, err)

		deliveries, err := ch.Consume(queueName, "test-consumer", true, false, false, false, nil)
		require.NoError(t, err)

		select {
		case d := <-deliveries:
			var got TestMsg
			require.NoError(t, json.Unmarshal(d.Body, &got))
			assert.Equal(t, msg, got)
			assert.Equal(t, "application/json", d.ContentType)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for message")
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{
			Ch: make(chan int),
		}

		err := PublishMessage(ch, "", queueName, badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
	})
}

func TestPublishMessage_ToEntitlementQueue(t *testing.T) {
	conn, err := Connect(brokerURI(t), 3, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := SetupChannel(conn, GetNotificationQueues())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	msg := map[string]any{"entitled": true}
	require.NoError(t, PublishMessage(ch, NotificationsExchange, EntitlementRoutingKey, msg))

	deliveries, err := ch.Consume(EntitlementQueue, "test-consumer2", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var got map[string]any
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, true, got["entitled"])
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message via exchange")
	}
}

func TestPublisher_Publish(t *testing.T) {
	conn, err := Connect(brokerURI(t), 3, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := SetupChannel(conn, GetNotificationQueues())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	_, err = ch.QueuePurge(EntitlementQueue, false)
	require.NoError(t, err)

	p := NewPublisher(ch)
	require.NoError(t, p.Publish(EntitlementRoutingKey, map[string]string{"user_uid": "u-1"}))

	deliveries, err := ch.Consume(EntitlementQueue, "test-consumer3", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var got map[string]string
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, "u-1", got["user_uid"])
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for published message")
	}
}
