package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.WebhookEvent("checkout_completed", "applied")
	m.WebhookEvent("checkout_completed", "applied")
	m.WebhookEvent("ignored", "ignored")
	m.GenerationAttempt("success")
	m.GenerationAttempt("failure")
	m.GenerationAttempt("failure")
	m.QuestionsGenerated(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.webhookEvents.WithLabelValues("checkout_completed", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.webhookEvents.WithLabelValues("ignored", "ignored")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.generationAttempts.WithLabelValues("failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.generatedQuestions))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.WebhookEvent("a", "b")
		m.GenerationAttempt("success")
		m.QuestionsGenerated(1)
	})
}
