// Package seed заменяет банк вопросов содержимым JSON-файлов.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// ErrInvalidQuestion вопрос в файле не проходит проверку.
var ErrInvalidQuestion = errors.New("invalid question")

// Repository методы хранилища для замены банка.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	DeleteAllQuestions(ctx context.Context) (int, error)
	CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error)
}

// Decode читает JSON-массив вопросов и проверяет каждый.
// Поля id, created_by_ia и created_at игнорируются.
func Decode(r io.Reader) ([]models.Question, error) {
	const op = "seed.Decode"

	var raw []models.Question
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]models.Question, 0, len(raw))
	for i, q := range raw {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("%s: question %d: %w", op, i, err)
		}
		result = append(result, models.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Subject:       q.Subject,
			ExamType:      q.ExamType,
			Difficulty:    q.Difficulty,
		})
	}
	return result, nil
}

func validate(q models.Question) error {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	case strings.TrimSpace(q.Subject) == "" || strings.TrimSpace(q.ExamType) == "":
		return fmt.Errorf("%w: subject and exam_type are required", ErrInvalidQuestion)
	case len(q.Options) < 2:
		return fmt.Errorf("%w: need at least 2 options", ErrInvalidQuestion)
	case !slices.Contains(q.Options, q.CorrectAnswer):
		return fmt.Errorf("%w: correct_answer is not among options", ErrInvalidQuestion)
	}
	return nil
}

// Replace удаляет все вопросы и сохраняет questions в одной транзакции.
// Возвращает количество удаленных вопросов.
func Replace(ctx context.Context, repo Repository, questions []models.Question) (int, error) {
	const op = "seed.Replace"

	var deleted int
	err := repo.RunInTx(ctx, func(ctx context.Context) error {
		n, err := repo.DeleteAllQuestions(ctx)
		if err != nil {
			return err
		}
		deleted = n
		for _, q := range questions {
			if _, err = repo.CreateQuestion(ctx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return deleted, nil
}
