// Package auth регистрирует пользователей и выдает токены доступа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Edu92337/quizmaster-backend/internal/lib/jwt"
	"github.com/Edu92337/quizmaster-backend/internal/lib/password"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/storage/repository"
)

// Ошибки аутентификации.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository хранилище пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service регистрация и вход.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewService создает Service.
func NewService(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{users: users, jwtMaker: jwtMaker}
}

// Register создает пользователя без подписки и возвращает его UID.
func (s *Service) Register(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	uid, err := s.users.CreateUser(ctx, normalizeEmail(email), hashed)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль и выпускает токен. Неизвестный email и неверный пароль
// неразличимы для клиента.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
