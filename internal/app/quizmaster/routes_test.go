package quizmaster

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"

	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/lib/jwt"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/services/progress"
	"github.com/Edu92337/quizmaster-backend/internal/services/questions"
	"github.com/Edu92337/quizmaster-backend/internal/services/subscription"
)

const (
	subscribedToken   = "token-subscribed"
	unsubscribedToken = "token-free"
)

type fakeTokens struct{}

func (fakeTokens) ParseToken(token string) (*jwt.Claims, error) {
	switch token {
	case subscribedToken:
		return &jwt.Claims{UserUID: "paid", Email: "paid@example.com"}, nil
	case unsubscribedToken:
		return &jwt.Claims{UserUID: "free", Email: "free@example.com"}, nil
	}
	return nil, jwt.ErrInvalidToken
}

type fakeSubscriptions struct{}

func (fakeSubscriptions) IsSubscribed(_ context.Context, userUID string) (bool, error) {
	return userUID == "paid", nil
}

type fakeAuth struct{}

func (fakeAuth) Register(context.Context, string, string) (string, error) { return "new-uid", nil }
func (fakeAuth) Login(context.Context, string, string) (string, error)    { return "jwt", nil }

type fakeWebhooks struct{ called bool }

func (f *fakeWebhooks) HandleWebhook(context.Context, []byte, string) (subscription.Effect, error) {
	f.called = true
	return subscription.Effect{Outcome: subscription.OutcomeIgnored}, nil
}

type fakeCheckout struct{}

func (fakeCheckout) CreateSession(context.Context, string) (string, error) {
	return "https://checkout.example.com/s/1", nil
}

type fakeQuestions struct{}

func (fakeQuestions) RequestGeneration(context.Context, string, questions.GenerationRequest) ([]models.Question, error) {
	return []models.Question{{ID: 1, Text: "q", Options: []string{"a", "b"}}}, nil
}

func (fakeQuestions) Get(_ context.Context, id int64) (*models.Question, error) {
	return &models.Question{ID: id, Text: "q", Options: []string{"a", "b"}}, nil
}

func (fakeQuestions) Answer(context.Context, string, int64, string) (questions.AnswerResult, error) {
	return questions.AnswerResult{IsCorrect: true, CorrectAnswer: "a"}, nil
}

type fakeProgress struct{}

func (fakeProgress) ForUser(_ context.Context, caller, user string) ([]progress.Entry, error) {
	if caller != user {
		return nil, progress.ErrForbidden
	}
	return []progress.Entry{}, nil
}

type fakeChat struct{}

func (fakeChat) Reply(context.Context, string, string) (string, error) { return "oi", nil }

type fakeGenerator struct{}

func (fakeGenerator) GenerateBatch(context.Context, string, string, string, string, int) ([]models.Question, error) {
	return []models.Question{{ID: 9, Text: "q", Options: []string{"a", "b"}}}, nil
}

func newRouter(t *testing.T, webhooks *fakeWebhooks, limiter *middlewarectx.ClientLimiter) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, slog.New(slog.NewTextHandler(io.Discard, nil)), Services{
		Auth:          fakeAuth{},
		Tokens:        fakeTokens{},
		Subscriptions: fakeSubscriptions{},
		Webhooks:      webhooks,
		Checkout:      fakeCheckout{},
		Questions:     fakeQuestions{},
		Progress:      fakeProgress{},
		Chat:          fakeChat{},
		Generator:     fakeGenerator{},
		Limiter:       limiter,
		Metrics:       promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
	})
	return r
}

func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRoutes_Access(t *testing.T) {
	router := newRouter(t, &fakeWebhooks{}, middlewarectx.NewClientLimiter(1000, 1000))

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		body           string
		wantStatusCode int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatusCode: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatusCode: http.StatusOK},
		{name: "swagger spec", method: http.MethodGet, path: "/docs/doc.json", wantStatusCode: http.StatusOK},
		{name: "register is public", method: http.MethodPost, path: "/api/v1/auth/register",
			body: `{"email":"a@example.com","password":"secret1"}`, wantStatusCode: http.StatusOK},
		{name: "login is public", method: http.MethodPost, path: "/api/v1/auth/login",
			body: `{"email":"a@example.com","password":"secret1"}`, wantStatusCode: http.StatusOK},
		{name: "question needs token", method: http.MethodGet, path: "/api/v1/questions/1",
			wantStatusCode: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodGet, path: "/api/v1/questions/1", token: "garbage",
			wantStatusCode: http.StatusUnauthorized},
		{name: "question readable without subscription", method: http.MethodGet, path: "/api/v1/questions/1",
			token: unsubscribedToken, wantStatusCode: http.StatusOK},
		{name: "answer without subscription", method: http.MethodPost, path: "/api/v1/questions/1/answer",
			token: unsubscribedToken, body: `{"answer":"a"}`, wantStatusCode: http.StatusOK},
		{name: "progress rejects malformed user id", method: http.MethodGet, path: "/api/v1/progress/free",
			token: unsubscribedToken, wantStatusCode: http.StatusBadRequest},
		{name: "checkout without subscription", method: http.MethodPost, path: "/api/v1/subscription/create-checkout-session",
			token: unsubscribedToken, wantStatusCode: http.StatusOK},
		{name: "generation requires subscription", method: http.MethodPost, path: "/api/v1/questions/generate",
			token: unsubscribedToken, body: `{"subject":"s","exam_type":"e"}`, wantStatusCode: http.StatusForbidden},
		{name: "generation for subscriber", method: http.MethodPost, path: "/api/v1/questions/generate",
			token: subscribedToken, body: `{"subject":"s","exam_type":"e"}`, wantStatusCode: http.StatusOK},
		{name: "chat requires subscription", method: http.MethodPost, path: "/api/v1/ai/chat",
			token: unsubscribedToken, body: `{"message":"oi"}`, wantStatusCode: http.StatusForbidden},
		{name: "chat for subscriber", method: http.MethodPost, path: "/api/v1/ai/chat",
			token: subscribedToken, body: `{"message":"oi"}`, wantStatusCode: http.StatusOK},
		{name: "single generation for subscriber", method: http.MethodPost, path: "/api/v1/ai/generate_question_ia",
			token: subscribedToken, body: `{"prompt":"p","subject":"s","exam_type":"e"}`, wantStatusCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(router, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantStatusCode, rr.Code, rr.Body.String())
		})
	}
}

func TestRoutes_WebhookIsPublic(t *testing.T) {
	webhooks := &fakeWebhooks{}
	router := newRouter(t, webhooks, middlewarectx.NewClientLimiter(1000, 1000))

	rr := do(router, http.MethodPost, "/api/v1/subscription/webhook", "", `{"id":"evt_1"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"success"}`, rr.Body.String())
	assert.True(t, webhooks.called)
}

func TestRoutes_RateLimitOnAuthenticatedRoutes(t *testing.T) {
	router := newRouter(t, &fakeWebhooks{}, middlewarectx.NewClientLimiter(0.001, 1))

	first := do(router, http.MethodGet, "/api/v1/questions/1", unsubscribedToken, "")
	second := do(router, http.MethodGet, "/api/v1/questions/1", unsubscribedToken, "")
	health := do(router, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, health.Code)
}
