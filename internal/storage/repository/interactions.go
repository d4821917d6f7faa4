package repository

import (
	"context"
	"fmt"

	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// CreateAIInteraction добавляет запись о взаимодействии с ИИ и возвращает ее ID.
func (s *Storage) CreateAIInteraction(ctx context.Context, interaction models.AIInteraction) (int64, error) {
	const op = "storage.CreateAIInteraction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int64
	query := `INSERT INTO ai_interactions (user_uid, interaction_type, prompt, response)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	err := s.conn(ctx).QueryRowContext(ctx, query,
		interaction.UserUID, interaction.InteractionType, interaction.Prompt, interaction.Response,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CountAIInteractions количество взаимодействий пользователя заданного типа.
func (s *Storage) CountAIInteractions(ctx context.Context, userUID, interactionType string) (int, error) {
	const op = "storage.CountAIInteractions"
	var count int
	query := `SELECT COUNT(*) FROM ai_interactions WHERE user_uid = $1 AND interaction_type = $2`
	if err := s.conn(ctx).QueryRowContext(ctx, query, userUID, interactionType).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
