package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Edu92337/quizmaster-backend/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, email string, customerID *string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, password_hash, stripe_customer_id)
		VALUES ($1, $2, 'hashedpassword', $3)`, uid, email, customerID)
	require.NoError(t, err)
	return uid
}

// CreateQuestion создает тестовый вопрос
func (f *TestDataFactory) CreateQuestion(t *testing.T, subject, examType, text string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO questions (text, options, correct_answer, subject, exam_type)
		VALUES ($1, '["A","B","C"]', 'A', $2, $3) RETURNING id`, text, subject, examType).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyIsSubscribed проверяет флаг доступа пользователя
func (v *TestVerification) VerifyIsSubscribed(t *testing.T, userUID string, expected bool) {
	var subscribed bool
	err := v.storage.DB.QueryRow("SELECT is_subscribed FROM users WHERE uid = $1", userUID).Scan(&subscribed)
	require.NoError(t, err)
	require.Equal(t, expected, subscribed)
}

// VerifySubscriptionCount проверяет количество подписок клиента
func (v *TestVerification) VerifySubscriptionCount(t *testing.T, customerID string, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM subscriptions WHERE billing_customer_id = $1", customerID).
		Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "Failed to apply migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}

	return storage, cleanup
}
