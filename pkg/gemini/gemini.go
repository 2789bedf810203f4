package gemini

import (
	"context"
	"errors"
	"os"
	"strings"

	"talksy/pkg/failure"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModel = "gemini-1.5-flash"
	op           = "knowledge"
)

const instruction = "You are a voice assistant. Answer in plain spoken English, " +
	"in at most three short sentences, without markdown."

type IGemini interface {
	Ask(ctx context.Context, query string) (string, error)
	Close()
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, op, query, errors.New("empty query"))
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(instruction))
	model.SetTemperature(0.2)

	res, err := model.GenerateContent(ctx, genai.Text(query))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", failure.NewWithSubject(failure.Unavailable, op, query, err)
		}
		return "", failure.NewWithSubject(failure.Upstream, op, query, err)
	}

	text := responseText(res)
	if text == "" {
		return "", failure.NewWithSubject(failure.NotFound, op, query, errors.New("no response from Gemini API"))
	}
	return text, nil
}

func responseText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
