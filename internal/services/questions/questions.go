// Package questions обслуживает банк вопросов: выдачу и генерацию пакетов, чтение
// вопроса через кэш и прием ответов с учетом дневного прогресса.
package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Edu92337/quizmaster-backend/internal/cache"
	"github.com/Edu92337/quizmaster-backend/internal/config"
	"github.com/Edu92337/quizmaster-backend/internal/lib/day"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/storage/repository"
)

// Ошибки запроса.
var (
	ErrMissingField = errors.New("subject and exam_type are required")
	ErrInvalidCount = errors.New("num_questions is out of range")
	ErrNotFound     = errors.New("no questions found")
)

const (
	defaultBatch = 5
	defaultMax   = 50
)

// Repository методы хранилища для вопросов и прогресса.
type Repository interface {
	FindQuestions(ctx context.Context, subject, examType string, limit int) ([]models.Question, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	IncrementProgress(ctx context.Context, userUID string, date time.Time, correct bool) error
}

// Generator генерирует пакет вопросов через LLM.
type Generator interface {
	GenerateBatch(ctx context.Context, userUID, subject, examType, prompt string, count int) ([]models.Question, error)
}

// Cache кэш неизменяемых вопросов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// GenerationRequest параметры запроса пакета вопросов.
type GenerationRequest struct {
	Subject  string
	ExamType string
	Count    *int   // nil означает размер по умолчанию
	Prompt   string // непустой промпт включает генерацию через LLM
}

// AnswerResult результат проверки ответа.
type AnswerResult struct {
	IsCorrect     bool
	CorrectAnswer string
}

// Service логика работы с вопросами.
type Service struct {
	repo         Repository
	generator    Generator
	cache        Cache
	cacheTTL     time.Duration
	defaultBatch int
	maxBatch     int
	log          *slog.Logger
	now          func() time.Time
}

// NewService создает Service. cache может быть nil.
func NewService(repo Repository, generator Generator, c Cache, cacheTTL time.Duration, cfg config.Generation, log *slog.Logger) *Service {
	s := &Service{
		repo:         repo,
		generator:    generator,
		cache:        c,
		cacheTTL:     cacheTTL,
		defaultBatch: cfg.DefaultBatch,
		maxBatch:     cfg.MaxBatch,
		log:          log,
		now:          time.Now,
	}
	if s.defaultBatch < 1 {
		s.defaultBatch = defaultBatch
	}
	if s.maxBatch < 1 {
		s.maxBatch = defaultMax
	}
	return s
}

// RequestGeneration проверяет запрос и либо генерирует новые вопросы, либо выбирает существующие.
func (s *Service) RequestGeneration(ctx context.Context, userUID string, req GenerationRequest) ([]models.Question, error) {
	const op = "questions.RequestGeneration"

	subject := strings.TrimSpace(req.Subject)
	examType := strings.TrimSpace(req.ExamType)
	if subject == "" || examType == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingField)
	}

	count := s.defaultBatch
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 || count > s.maxBatch {
		return nil, fmt.Errorf("%s: %w: must be between 1 and %d", op, ErrInvalidCount, s.maxBatch)
	}

	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		created, err := s.generator.GenerateBatch(ctx, userUID, subject, examType, prompt, count)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return created, nil
	}

	found, err := s.repo.FindQuestions(ctx, subject, examType, count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return found, nil
}

// Get возвращает вопрос, сначала из кэша. Ошибки кэша не прерывают чтение из базы.
func (s *Service) Get(ctx context.Context, id int64) (*models.Question, error) {
	const op = "questions.Get"
	key := cache.QuestionKey(id)

	if s.cache != nil {
		var cached models.Question
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("question cache read failed", slog.String("op", op), slog.Int64("question_id", id), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	q, err := s.repo.GetQuestion(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, q, s.cacheTTL); err != nil {
			s.log.Warn("question cache write failed", slog.String("op", op), slog.Int64("question_id", id), sl.Err(err))
		}
	}
	return q, nil
}

// Answer сверяет ответ и увеличивает счетчики пользователя за текущий день (UTC).
func (s *Service) Answer(ctx context.Context, userUID string, id int64, answer string) (AnswerResult, error) {
	const op = "questions.Answer"

	q, err := s.Get(ctx, id)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("%s: %w", op, err)
	}

	correct := answer == q.CorrectAnswer
	if err = s.repo.IncrementProgress(ctx, userUID, day.Truncate(s.now()), correct); err != nil {
		return AnswerResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return AnswerResult{IsCorrect: correct, CorrectAnswer: q.CorrectAnswer}, nil
}
