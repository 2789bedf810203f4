package openai

import (
	"context"
	"errors"
	"os"
	"strings"

	"talksy/pkg/failure"

	"github.com/sashabaranov/go-openai"
)

const op = "knowledge"

const systemPrompt = "You are Talksy, a voice assistant. Answer the question in plain spoken English, " +
	"in at most three short sentences, without markdown or lists."

type IChatGPT interface {
	Ask(ctx context.Context, query string) (string, error)
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

// NewChatGPT answers general questions with OPENAI_CHAT_MODEL, defaulting to
// gpt-4o-mini.
func NewChatGPT(apiKey string) IChatGPT {
	return NewChatGPTWithConfig(openai.DefaultConfig(apiKey), os.Getenv("OPENAI_CHAT_MODEL"))
}

func NewChatGPTWithConfig(cfg openai.ClientConfig, model string) IChatGPT {
	if model == "" {
		model = openai.GPT4oMini
	}

	return &chatGPTService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *chatGPTService) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, op, query, errors.New("empty query"))
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: query},
			},
			Temperature: 0.2,
			MaxTokens:   150,
		},
	)
	if err != nil {
		return "", chatFailure(query, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", failure.NewWithSubject(failure.NotFound, op, query, errors.New("no response from ChatGPT"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func chatFailure(query string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return failure.NewWithSubject(failure.Unavailable, op, query, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return failure.NewWithSubject(failure.Unavailable, op, query, err)
	}
	return failure.NewWithSubject(failure.Upstream, op, query, err)
}
