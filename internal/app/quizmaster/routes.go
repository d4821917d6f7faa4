// Package quizmaster собирает HTTP API сервиса: маршруты, middleware и жизненный цикл приложения.
package quizmaster

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/Edu92337/quizmaster-backend/docs"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/ai/chat"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/ai/generatequestion"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/auth/login"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/auth/register"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/health"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/progress/read"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/questions/answer"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/questions/generate"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/questions/get"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/subscription/checkout"
	"github.com/Edu92337/quizmaster-backend/internal/http/handlers/subscription/webhook"
	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
)

// AuthService регистрация и вход.
type AuthService interface {
	register.Service
	login.Service
}

// QuestionService выдача, чтение и проверка вопросов.
type QuestionService interface {
	generate.Service
	get.Service
	answer.Service
}

// Services зависимости обработчиков.
type Services struct {
	Auth          AuthService
	Tokens        middlewarectx.TokenParser
	Subscriptions middlewarectx.SubscriptionChecker
	Webhooks      webhook.Service
	Checkout      checkout.Service
	Questions     QuestionService
	Progress      read.Service
	Chat          chat.Service
	Generator     generatequestion.Generator
	Limiter       *middlewarectx.ClientLimiter
	Metrics       http.Handler // nil означает promhttp.Handler()
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	metricsHandler := s.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", metricsHandler)
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)

		// Вебхук проверяется подписью, а не токеном
		r.Post("/subscription/webhook", webhook.New(logger, s.Webhooks).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, s.Limiter))

			r.Post("/subscription/create-checkout-session", checkout.New(logger, s.Checkout).ServeHTTP)
			r.Get("/questions/{id}", get.New(logger, s.Questions).ServeHTTP)
			r.Post("/questions/{id}/answer", answer.New(logger, s.Questions).ServeHTTP)
			r.Get("/progress/{user_id}", read.New(logger, s.Progress).ServeHTTP)

			// Только для активной подписки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionRequiredMiddleware(logger, s.Subscriptions))

				r.Post("/questions/generate", generate.New(logger, s.Questions).ServeHTTP)
				r.Post("/ai/chat", chat.New(logger, s.Chat).ServeHTTP)
				r.Post("/ai/generate_question_ia", generatequestion.New(logger, s.Generator).ServeHTTP)
			})
		})
	})
}
