package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/logger"
)

const analysisSystemPrompt = "You are a privacy analysis assistant. Given a public social media " +
	"profile reference, respond with a single JSON object containing the keys " +
	"interests (array of strings), confidences (object mapping interest to a 0..1 number), " +
	"economic_indicators (object) and schedule_patterns (object). " +
	"Respond with JSON only, no prose."

// OpenAIProvider runs profile analysis through the OpenAI Chat Completions API.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// NewOpenAIProvider creates an OpenAI-backed analysis provider.
func NewOpenAIProvider(cfg config.AnalysisConfig, log *logger.Logger) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
		logger:  log,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that the API accepts the configured credentials.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil && p.logger != nil {
		p.logger.Warn("OpenAI availability check failed", zap.Error(err))
	}
	return err == nil
}

// Analyze asks the model for a structured profile analysis and decodes the
// JSON payload it returns.
func (p *OpenAIProvider) Analyze(ctx context.Context, profile Profile) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Analyze the public %s profile %q (username %q).", profile.Platform, profile.URL, profile.Username)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   1000,
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var result Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}

	result.Provider = p.Name()
	result.Model = resp.Model
	result.AnalyzedAt = time.Now().UTC()

	if p.logger != nil {
		p.logger.Debug("Profile analysis completed",
			zap.String("platform", profile.Platform),
			zap.String("model", resp.Model),
			zap.Int("interests", len(result.Interests)),
			zap.Int("tokens_used", resp.Usage.TotalTokens),
		)
	}

	return &result, nil
}
