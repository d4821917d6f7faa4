// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	GRPCHealthAddress       string `yaml:"grpc_health_address" env-default:":50051"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Stripe                  `yaml:"stripe"`
	Generation              `yaml:"generation"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"60s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"5"`
	RateBurst   int           `yaml:"rate_burst" env-default:"10"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	QuestionTTL  time.Duration `yaml:"question_ttl" env-default:"1h"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Stripe настройки платежного провайдера
type Stripe struct {
	SecretKey     string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `yaml:"webhook_secret" env:"STRIPE_WEBHOOK_SECRET"`
	FrontendURL   string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	Currency      string `yaml:"currency" env-default:"brl"`
	UnitAmount    int64  `yaml:"unit_amount" env-default:"2990"`
	ProductName   string `yaml:"product_name" env-default:"Assinatura Mensal de Questões"`
	Interval      string `yaml:"interval" env-default:"month"`
}

// Generation настройки генерации вопросов через LLM
type Generation struct {
	OpenAIAPIKey   string        `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model" env-default:"gpt-4.1-mini"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout" env-default:"30s"`
	BatchTimeout   time.Duration `yaml:"batch_timeout" env-default:"45s"`
	DefaultBatch   int           `yaml:"default_batch" env-default:"5"`
	MaxBatch       int           `yaml:"max_batch" env-default:"50"`
	Parallelism    int           `yaml:"parallelism" env-default:"1"`
}

// RabbitMQ настройки брокера для уведомлений
type RabbitMQ struct {
	RabbitMQURL      string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP настройки почтового сервера
type SMTP struct {
	SMTPHost string `yaml:"host"`
	SMTPPort string `yaml:"port" env-default:"587"`
	SMTPUser string `yaml:"user"`
	SMTPPass string `yaml:"password" env:"SMTP_PASSWORD"`
}

// MustLoad функция для загрузки конфига, путь берется из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// Ошибки проверки таймаутов генерации.
var (
	ErrBatchTimeout   = errors.New("generation batch timeout must be positive and shorter than http timeout")
	ErrAttemptTimeout = errors.New("generation attempt timeout must be shorter than http timeout")
)

// Validate проверяет согласованность таймаутов. Пакет генерации должен завершиться
// и закоммитить результат до того, как сервер закроет соединение по WriteTimeout.
func (c *Config) Validate() error {
	const op = "config.Validate"

	if c.BatchTimeout <= 0 || (c.TimeoutHTTP > 0 && c.BatchTimeout >= c.TimeoutHTTP) {
		return fmt.Errorf("%s: %w: batch_timeout=%s timeouthttp=%s", op, ErrBatchTimeout, c.BatchTimeout, c.TimeoutHTTP)
	}
	if c.TimeoutHTTP > 0 && c.AttemptTimeout >= c.TimeoutHTTP {
		return fmt.Errorf("%s: %w: attempt_timeout=%s timeouthttp=%s", op, ErrAttemptTimeout, c.AttemptTimeout, c.TimeoutHTTP)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"GRPCHealthAddress: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Generation:\n"+
			"  Model: %s\n"+
			"  BatchTimeout: %s\n"+
			"  MaxBatch: %d\n"+
			"  Parallelism: %d\n",
		c.Env,
		c.MigrationsPath,
		c.GRPCHealthAddress,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Model,
		c.BatchTimeout,
		c.MaxBatch,
		c.Parallelism,
	)
}
