package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// IncrementProgress атомарно увеличивает дневные счетчики пользователя,
// создавая строку за день при первом ответе.
func (s *Storage) IncrementProgress(ctx context.Context, userUID string, date time.Time, correct bool) error {
	const op = "storage.IncrementProgress"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	correctDelta := 0
	if correct {
		correctDelta = 1
	}

	query := `INSERT INTO user_progress (user_uid, date, questions_answered, correct_answers)
			  VALUES ($1, $2, 1, $3)
			  ON CONFLICT (user_uid, date) DO UPDATE
			  SET questions_answered = user_progress.questions_answered + 1,
			      correct_answers = user_progress.correct_answers + EXCLUDED.correct_answers`
	if _, err := s.conn(ctx).ExecContext(ctx, query, userUID, date, correctDelta); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListProgress возвращает дневные записи пользователя начиная с from, по возрастанию даты.
func (s *Storage) ListProgress(ctx context.Context, userUID string, from time.Time) ([]models.UserProgress, error) {
	const op = "storage.ListProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, date, questions_answered, correct_answers
			  FROM user_progress
			  WHERE user_uid = $1 AND date >= $2
			  ORDER BY date ASC`
	rows, err := s.conn(ctx).QueryContext(ctx, query, userUID, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.UserProgress
	for rows.Next() {
		var p models.UserProgress
		if err = rows.Scan(&p.UserUID, &p.Date, &p.QuestionsAnswered, &p.CorrectAnswers); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
