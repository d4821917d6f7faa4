// Package progress отдает дневную статистику ответов пользователя для календаря.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Edu92337/quizmaster-backend/internal/lib/day"
	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// ErrForbidden пользователь запрашивает чужой прогресс.
var ErrForbidden = errors.New("access to another user's progress")

// WindowDays глубина истории прогресса: сегодня и WindowDays предыдущих дней.
const WindowDays = 365

// Repository источник дневных записей.
type Repository interface {
	ListProgress(ctx context.Context, userUID string, from time.Time) ([]models.UserProgress, error)
}

// Entry одна запись календаря.
type Entry struct {
	Date              string  `json:"date"`
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectAnswers    int     `json:"correct_answers"`
	ScorePercentage   float64 `json:"score_percentage"`
}

// Service чтение прогресса.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService создает Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ForUser возвращает записи с дня WindowStart(now, WindowDays) по сегодня по возрастанию даты.
// callerUID должен совпадать с userUID.
func (s *Service) ForUser(ctx context.Context, callerUID, userUID string) ([]Entry, error) {
	const op = "progress.ForUser"
	if callerUID != userUID {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	rows, err := s.repo.ListProgress(ctx, userUID, day.WindowStart(s.now(), WindowDays))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{
			Date:              day.Format(r.Date),
			QuestionsAnswered: r.QuestionsAnswered,
			CorrectAnswers:    r.CorrectAnswers,
			ScorePercentage:   Score(r.QuestionsAnswered, r.CorrectAnswers),
		})
	}
	return entries, nil
}

// Score доля верных ответов в процентах, 0 если ответов не было.
func Score(answered, correct int) float64 {
	if answered <= 0 {
		return 0
	}
	return float64(correct) / float64(answered) * 100
}
