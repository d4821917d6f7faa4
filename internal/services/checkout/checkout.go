// Package checkout начинает оформление подписки у платежного провайдера.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Edu92337/quizmaster-backend/internal/billing"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/storage/repository"
)

// Ошибки оформления.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrProvider     = errors.New("billing provider error")
)

// Repository методы хранилища для привязки клиента провайдера.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	SetStripeCustomerID(ctx context.Context, userUID, customerID string) error
}

// Service создает checkout-сессии.
type Service struct {
	repo    Repository
	gateway billing.Gateway
	log     *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, gateway billing.Gateway, log *slog.Logger) *Service {
	return &Service{repo: repo, gateway: gateway, log: log}
}

// CreateSession гарантирует наличие клиента у провайдера и возвращает ссылку на оплату.
func (s *Service) CreateSession(ctx context.Context, userUID string) (string, error) {
	const op = "checkout.CreateSession"

	user, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	customerID := ""
	if user.StripeCustomerID != nil {
		customerID = *user.StripeCustomerID
	}
	if customerID == "" {
		customerID, err = s.gateway.CreateCustomer(ctx, user.Email, user.UUID)
		if err != nil {
			return "", fmt.Errorf("%s: %w: %w", op, ErrProvider, err)
		}
		if err = s.repo.SetStripeCustomerID(ctx, user.UUID, customerID); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("billing customer created", slog.String("op", op), slog.String("user_uid", user.UUID))
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, customerID, user.UUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrProvider, err)
	}
	return url, nil
}
