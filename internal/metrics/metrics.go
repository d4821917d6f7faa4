// Package metrics счетчики Prometheus для вебхуков биллинга и генерации вопросов.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор счетчиков сервиса. Методы безопасно вызывать на nil.
type Metrics struct {
	webhookEvents      *prometheus.CounterVec
	generationAttempts *prometheus.CounterVec
	generatedQuestions prometheus.Counter
}

// New регистрирует счетчики в reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		webhookEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizmaster",
			Name:      "webhook_events_total",
			Help:      "Billing webhook events by kind and outcome.",
		}, []string{"kind", "outcome"}),
		generationAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizmaster",
			Name:      "generation_attempts_total",
			Help:      "Question generation attempts by outcome.",
		}, []string{"outcome"}),
		generatedQuestions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "quizmaster",
			Name:      "generated_questions_total",
			Help:      "Questions persisted from successful generation attempts.",
		}),
	}
}

// WebhookEvent учитывает обработанное событие биллинга.
func (m *Metrics) WebhookEvent(kind, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(kind, outcome).Inc()
}

// GenerationAttempt учитывает одну попытку генерации.
func (m *Metrics) GenerationAttempt(outcome string) {
	if m == nil {
		return
	}
	m.generationAttempts.WithLabelValues(outcome).Inc()
}

// QuestionsGenerated учитывает сохраненные вопросы.
func (m *Metrics) QuestionsGenerated(n int) {
	if m == nil {
		return
	}
	m.generatedQuestions.Add(float64(n))
}
