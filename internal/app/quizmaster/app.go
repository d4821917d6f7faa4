package quizmaster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/Edu92337/quizmaster-backend/internal/billing"
	"github.com/Edu92337/quizmaster-backend/internal/cache"
	"github.com/Edu92337/quizmaster-backend/internal/config"
	"github.com/Edu92337/quizmaster-backend/internal/grpc/health"
	"github.com/Edu92337/quizmaster-backend/internal/http/middlewarectx"
	"github.com/Edu92337/quizmaster-backend/internal/lib/jwt"
	"github.com/Edu92337/quizmaster-backend/internal/lib/rabbitmq"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/llm"
	"github.com/Edu92337/quizmaster-backend/internal/metrics"
	"github.com/Edu92337/quizmaster-backend/internal/migrations"
	"github.com/Edu92337/quizmaster-backend/internal/services/auth"
	"github.com/Edu92337/quizmaster-backend/internal/services/chat"
	"github.com/Edu92337/quizmaster-backend/internal/services/checkout"
	"github.com/Edu92337/quizmaster-backend/internal/services/generation"
	"github.com/Edu92337/quizmaster-backend/internal/services/progress"
	"github.com/Edu92337/quizmaster-backend/internal/services/questions"
	"github.com/Edu92337/quizmaster-backend/internal/services/subscription"
	"github.com/Edu92337/quizmaster-backend/internal/storage/repository"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 10 * time.Second
)

// App HTTP API, gRPC health и их зависимости.
type App struct {
	server      *http.Server
	health      *health.Server
	healthLis   net.Listener
	logger      *slog.Logger
	db          *repository.Storage
	cache       *cache.Cache
	amqpConn    *amqp.Connection
	amqpChannel *amqp.Channel
}

// New подключает хранилища, применяет миграции и собирает граф сервисов.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.quizmaster.New"

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.DB.Close()
		return nil, err
	}
	if err = db.CheckDatabaseReady(ctx); err != nil {
		_ = db.DB.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.DB.Close()
		return nil, err
	}

	a := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	// Уведомления необязательны: без брокера изменения доступа только логируются.
	var notifier subscription.Notifier
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			_ = conn.Close()
			a.closeResources()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.amqpConn, a.amqpChannel = conn, ch
		notifier = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is empty, entitlement notifications disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	backend := llm.NewOpenAI(cfg.Generation)
	coordinator := generation.NewCoordinator(backend, db, cfg.Generation, m, logger)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	subscriptionService := subscription.NewService(
		billing.NewNormalizer(cfg.WebhookSecret),
		subscription.NewReconciler(db, logger),
		notifier,
		m,
		logger,
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:          auth.NewService(db, jwtMaker),
		Tokens:        jwtMaker,
		Subscriptions: db,
		Webhooks:      subscriptionService,
		Checkout:      checkout.NewService(db, billing.NewStripeGateway(cfg.Stripe, nil), logger),
		Questions:     questions.NewService(db, coordinator, cacheRedis, cfg.QuestionTTL, cfg.Generation, logger),
		Progress:      progress.NewService(db),
		Chat:          chat.NewService(backend, db, cfg.AttemptTimeout),
		Generator:     coordinator,
		Limiter:       middlewarectx.NewClientLimiter(cfg.RateLimit, cfg.RateBurst),
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	a.healthLis, err = net.Listen("tcp", cfg.GRPCHealthAddress)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.health = health.NewServer(db.DB, logger)

	return a, nil
}

// Run обслуживает запросы до отмены ctx, затем мягко останавливает серверы.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()
	go func() {
		errCh <- a.health.Serve(a.healthLis)
	}()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go a.health.Watch(watchCtx, healthCheckInterval)

	var runErr error
	select {
	case runErr = <-errCh:
		a.logger.Error("server stopped unexpectedly", sl.Err(runErr))
	case <-ctx.Done():
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down gracefully")

	stopWatch()
	a.health.Stop()
	if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
		runErr = err
	}
	a.closeResources()
	return runErr
}

func (a *App) closeResources() {
	if a.amqpChannel != nil {
		if err := a.amqpChannel.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
