// Package generation запускает пакет независимых попыток генерации вопросов через LLM
// и атомарно сохраняет успешные результаты.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Edu92337/quizmaster-backend/internal/config"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/llm"
	"github.com/Edu92337/quizmaster-backend/internal/metrics"
	"github.com/Edu92337/quizmaster-backend/internal/models"
)

// Ошибки отдельной попытки и пакета.
var (
	ErrBackend       = errors.New("generation backend failed")
	ErrBatchDeadline = errors.New("generation batch deadline exceeded")
	ErrInvalidOutput = errors.New("generated question is invalid")
	ErrPersistence   = errors.New("failed to persist generated questions")
)

// DifficultyDynamic сложность вопросов, созданных моделью.
const DifficultyDynamic = "dynamic"

// Repository методы хранилища для сохранения пакета.
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error)
	CreateAIInteraction(ctx context.Context, interaction models.AIInteraction) (int64, error)
}

// Attempt результат одной попытки. Err != nil означает, что попытка пропущена.
type Attempt struct {
	Index    int
	Question models.Question
	Raw      string
	Err      error
}

// Coordinator выполняет пакеты генерации.
type Coordinator struct {
	backend     llm.Backend
	repo        Repository
	metrics     *metrics.Metrics
	log         *slog.Logger
	timeout      time.Duration
	batchTimeout time.Duration
	parallelism  int
}

// NewCoordinator создает Coordinator. Parallelism < 1 означает последовательные попытки.
func NewCoordinator(backend llm.Backend, repo Repository, cfg config.Generation, m *metrics.Metrics, log *slog.Logger) *Coordinator {
	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	return &Coordinator{
		backend:     backend,
		repo:        repo,
		metrics:     m,
		log:         log,
		timeout:      cfg.AttemptTimeout,
		batchTimeout: cfg.BatchTimeout,
		parallelism:  parallelism,
	}
}

// GenerateBatch выполняет count попыток и сохраняет успешные в одной транзакции.
// Неудачные попытки пропускаются без повторов. Если все попытки неудачны, возвращается
// пустой срез без ошибки и ничего не пишется.
// Попытки, не завершенные к истечению BatchTimeout, считаются неудачными,
// а коммит выполняется уже под исходным ctx.
func (c *Coordinator) GenerateBatch(ctx context.Context, userUID, subject, examType, prompt string, count int) ([]models.Question, error) {
	const op = "generation.GenerateBatch"

	log := c.log.With(
		slog.String("op", op),
		slog.String("user_uid", userUID),
		slog.String("subject", subject),
		slog.String("exam_type", examType),
		slog.Int("count", count),
	)

	p := llm.Prompt{
		System: systemInstruction(subject, examType),
		User:   userInstruction(prompt),
		JSON:   true,
	}

	bctx := ctx
	if c.batchTimeout > 0 {
		var cancel context.CancelFunc
		bctx, cancel = context.WithTimeout(ctx, c.batchTimeout)
		defer cancel()
	}

	attempts := c.runAttempts(bctx, p, subject, examType, count)

	staged := make([]Attempt, 0, len(attempts))
	for _, a := range attempts {
		if a.Err != nil {
			log.Warn("generation attempt skipped", slog.Int("attempt", a.Index), sl.Err(a.Err))
			continue
		}
		staged = append(staged, a)
	}
	if len(staged) == 0 {
		log.Warn("all generation attempts failed")
		return []models.Question{}, nil
	}

	created := make([]models.Question, 0, len(staged))
	err := c.repo.RunInTx(ctx, func(ctx context.Context) error {
		created = created[:0]
		for _, a := range staged {
			q, err := c.repo.CreateQuestion(ctx, a.Question)
			if err != nil {
				return err
			}
			if _, err = c.repo.CreateAIInteraction(ctx, models.AIInteraction{
				UserUID:         userUID,
				InteractionType: models.InteractionQuestionGeneration,
				Prompt:          prompt,
				Response:        a.Raw,
			}); err != nil {
				return err
			}
			created = append(created, *q)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	c.metrics.QuestionsGenerated(len(created))
	log.Info("questions generated", slog.Int("created", len(created)))
	return created, nil
}

func (c *Coordinator) runAttempts(ctx context.Context, p llm.Prompt, subject, examType string, count int) []Attempt {
	attempts := make([]Attempt, count)

	// Ошибки попыток не отменяют группу, поэтому Wait всегда возвращает nil.
	var g errgroup.Group
	g.SetLimit(c.parallelism)
	for i := range count {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				attempts[i] = Attempt{Index: i, Err: fmt.Errorf("%w: %w", ErrBatchDeadline, err)}
				c.metrics.GenerationAttempt("batch_deadline")
				return nil
			}
			attempts[i] = c.attempt(ctx, i, p, subject, examType)
			return nil
		})
	}
	_ = g.Wait()
	return attempts
}

func (c *Coordinator) attempt(ctx context.Context, index int, p llm.Prompt, subject, examType string) Attempt {
	a := Attempt{Index: index}

	actx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.backend.Complete(actx, p)
	if err != nil {
		a.Err = fmt.Errorf("%w: %w", ErrBackend, err)
		c.metrics.GenerationAttempt("backend_error")
		return a
	}
	a.Raw = raw

	q, err := parseQuestion(raw)
	if err != nil {
		a.Err = err
		c.metrics.GenerationAttempt("invalid_output")
		return a
	}
	q.Subject = subject
	q.ExamType = examType
	q.Difficulty = DifficultyDynamic
	q.CreatedByIA = true
	a.Question = q

	c.metrics.GenerationAttempt("ok")
	return a
}

type generatedQuestion struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// parseQuestion декодирует ответ модели и проверяет структуру вопроса.
func parseQuestion(raw string) (models.Question, error) {
	var g generatedQuestion
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return models.Question{}, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}
	if strings.TrimSpace(g.QuestionText) == "" {
		return models.Question{}, fmt.Errorf("%w: empty question_text", ErrInvalidOutput)
	}
	if len(g.Options) < 2 {
		return models.Question{}, fmt.Errorf("%w: need at least 2 options, got %d", ErrInvalidOutput, len(g.Options))
	}
	if !slices.Contains(g.Options, g.CorrectAnswer) {
		return models.Question{}, fmt.Errorf("%w: correct_answer is not among options", ErrInvalidOutput)
	}
	return models.Question{
		Text:          g.QuestionText,
		Options:       g.Options,
		CorrectAnswer: g.CorrectAnswer,
	}, nil
}
