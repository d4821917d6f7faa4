package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Edu92337/quizmaster-backend/internal/models"
)

const questionColumns = `id, text, options, correct_answer, subject, exam_type, difficulty, created_by_ia, created_at`

// CreateQuestion сохраняет вопрос и возвращает его с заполненными ID и CreatedAt.
func (s *Storage) CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error) {
	const op = "storage.CreateQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO questions (text, options, correct_answer, subject, exam_type, difficulty, created_by_ia)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at`
	err = s.conn(ctx).QueryRowContext(ctx, query,
		q.Text, string(options), q.CorrectAnswer, q.Subject, q.ExamType, q.Difficulty, q.CreatedByIA,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &q, nil
}

// GetQuestion возвращает вопрос по ID.
func (s *Storage) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	const op = "storage.GetQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q, err := scanQuestion(s.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return q, nil
}

// FindQuestions возвращает до limit вопросов по предмету и типу экзамена.
func (s *Storage) FindQuestions(ctx context.Context, subject, examType string, limit int) ([]models.Question, error) {
	const op = "storage.FindQuestions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + questionColumns + `
			  FROM questions
			  WHERE subject = $1 AND exam_type = $2
			  ORDER BY id
			  LIMIT $3`
	rows, err := s.conn(ctx).QueryContext(ctx, query, subject, examType, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteAllQuestions очищает банк вопросов и возвращает количество удалённых строк.
func (s *Storage) DeleteAllQuestions(ctx context.Context) (int, error) {
	const op = "storage.DeleteAllQuestions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM questions`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var options []byte
	if err := row.Scan(&q.ID, &q.Text, &options, &q.CorrectAnswer, &q.Subject, &q.ExamType,
		&q.Difficulty, &q.CreatedByIA, &q.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &q.Options); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return &q, nil
}
