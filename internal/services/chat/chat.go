// Package chat свободный диалог пользователя с учебным ассистентом.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Edu92337/quizmaster-backend/internal/llm"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/services/generation"
)

// ErrEmptyMessage пустое сообщение.
var ErrEmptyMessage = errors.New("message is required")

// Repository журнал обращений к LLM.
type Repository interface {
	CreateAIInteraction(ctx context.Context, interaction models.AIInteraction) (int64, error)
}

// Service отвечает на сообщения через LLM.
type Service struct {
	backend llm.Backend
	repo    Repository
	timeout time.Duration
}

// NewService создает Service. timeout ограничивает один вызов модели, 0 отключает ограничение.
func NewService(backend llm.Backend, repo Repository, timeout time.Duration) *Service {
	return &Service{backend: backend, repo: repo, timeout: timeout}
}

// Reply отправляет сообщение модели и записывает обмен в журнал.
func (s *Service) Reply(ctx context.Context, userUID, message string) (string, error) {
	const op = "chat.Reply"
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyMessage)
	}

	cctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := s.backend.Complete(cctx, llm.Prompt{
		System: generation.ChatSystemInstruction,
		User:   message,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err = s.repo.CreateAIInteraction(ctx, models.AIInteraction{
		UserUID:         userUID,
		InteractionType: models.InteractionChat,
		Prompt:          message,
		Response:        response,
	}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return response, nil
}
