// Package llm абстрагирует языковую модель, которая генерирует вопросы и отвечает в чате.
package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Edu92337/quizmaster-backend/internal/config"
)

// ErrEmptyResponse модель не вернула ни одного варианта ответа.
var ErrEmptyResponse = errors.New("empty completion")

// Prompt запрос к модели.
type Prompt struct {
	System string
	User   string
	JSON   bool // требовать ответ в виде JSON-объекта
}

// Backend языковая модель.
type Backend interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// OpenAI реализует Backend через Chat Completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI создает клиента. Пустой BaseURL означает API OpenAI по умолчанию.
func NewOpenAI(cfg config.Generation) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Complete отправляет один запрос и возвращает текст первого варианта.
func (o *OpenAI) Complete(ctx context.Context, p Prompt) (string, error) {
	const op = "llm.Complete"

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
	}
	if p.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
