package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/vladimiradmaev/drink-helper/internal/config"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"google.golang.org/api/option"
)

// Role tags a chat turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior message of a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// GenerateRequest is everything a provider needs to answer one message.
type GenerateRequest struct {
	SystemInstruction string
	Context           string
	History           []Turn
	Message           string
}

//go:generate mockgen -package=mocks -destination=mocks/mock_text_generator.go github.com/vladimiradmaev/drink-helper/internal/services TextGenerator
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// ErrNotConfigured is returned when no provider has an API key.
var ErrNotConfigured = errors.New("no text generation provider configured")

// errEmptyResponse is returned when a provider answers without any text.
var errEmptyResponse = errors.New("empty response")

const (
	answerInstruction    = "Answer the user's question based on the information above."
	modelAcknowledgement = "Got it. I'll give friendly advice based on the user's drinking data."

	temperature     = 0.7
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 500
)

// AIService generates chat answers with Gemini and falls back to OpenAI when
// Gemini fails. Either provider may be missing.
type AIService struct {
	geminiClient *genai.Client
	geminiModel  string
	openaiClient *openai.Client
	openaiModel  string
}

func NewAIService(ctx context.Context, cfg config.AIConfig) (*AIService, error) {
	s := &AIService{geminiModel: cfg.GeminiModel, openaiModel: cfg.OpenAIModel}

	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
	}

	if cfg.OpenAIAPIKey != "" {
		s.openaiClient = openai.NewClient(cfg.OpenAIAPIKey)
	}

	if s.geminiClient == nil && s.openaiClient == nil {
		logger.Warn("No AI provider configured, chat will answer with a notice")
	}
	return s, nil
}

// Generate answers req.Message. It returns ErrNotConfigured when no provider
// is available.
func (s *AIService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if s.geminiClient == nil && s.openaiClient == nil {
		return "", ErrNotConfigured
	}

	if s.geminiClient != nil {
		text, err := s.generateWithGemini(ctx, req)
		if err == nil {
			return text, nil
		}
		if s.openaiClient == nil {
			return "", err
		}
		logger.Warn("Gemini failed, falling back to OpenAI", "error", err)
	}

	return s.generateWithOpenAI(ctx, req)
}

func (s *AIService) Close() error {
	if s.geminiClient != nil {
		return s.geminiClient.Close()
	}
	return nil
}

func (s *AIService) generateWithGemini(ctx context.Context, req GenerateRequest) (string, error) {
	model := s.geminiClient.GenerativeModel(s.geminiModel)
	configureGeminiModel(model)

	cs := model.StartChat()
	cs.History = geminiHistory(req)

	resp, err := cs.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return geminiText(resp)
}

func (s *AIService) generateWithOpenAI(ctx context.Context, req GenerateRequest) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.openaiModel,
		Messages:    openAIMessages(req),
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func configureGeminiModel(model *genai.GenerativeModel) {
	model.SetTemperature(temperature)
	model.SetTopK(topK)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}
}

// primingText is the first user turn: the instruction, the data context and
// the request to answer from it.
func primingText(req GenerateRequest) string {
	return req.SystemInstruction + "\n\n" + req.Context + "\n\n" + answerInstruction
}

// geminiHistory lays out the conversation before the new message: the
// priming turn, a fixed model acknowledgement, then the prior turns.
func geminiHistory(req GenerateRequest) []*genai.Content {
	history := make([]*genai.Content, 0, len(req.History)+2)
	history = append(history,
		&genai.Content{Role: string(RoleUser), Parts: []genai.Part{genai.Text(primingText(req))}},
		&genai.Content{Role: string(RoleModel), Parts: []genai.Part{genai.Text(modelAcknowledgement)}},
	)
	for _, turn := range req.History {
		history = append(history, &genai.Content{
			Role:  string(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	return history
}

func openAIMessages(req GenerateRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+3)
	messages = append(messages,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: primingText(req)},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: modelAcknowledgement},
	)
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})
}

// geminiText extracts the text of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errEmptyResponse
	}
	return b.String(), nil
}
