package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/utils"

	"google.golang.org/genai"
)

// TextGenerator turns a prompt into freeform text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIServiceConfig configures the Gemini-backed generator.
type AIServiceConfig struct {
	APIKey           string
	Model            string
	Timeout          time.Duration
	SystemPromptFile string
	Grounding        bool
	// BaseURL overrides the Gemini endpoint.
	BaseURL string
}

type AIService struct {
	Client       *genai.Client
	Model        string
	SystemPrompt string
	Grounding    bool
	Timeout      time.Duration
}

func NewAIService(ctx context.Context, cfg AIServiceConfig) (*AIService, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	systemPrompt, err := utils.LoadPromptFromFile(cfg.SystemPromptFile)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}

	return &AIService{
		Client:       client,
		Model:        cfg.Model,
		SystemPrompt: systemPrompt,
		Grounding:    cfg.Grounding,
		Timeout:      cfg.Timeout,
	}, nil
}

func (s *AIService) contentConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if strings.TrimSpace(s.SystemPrompt) != "" {
		config.SystemInstruction = genai.Text(s.SystemPrompt)[0]
	}
	if s.Grounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return config
}

// Generate makes a single GenerateContent call. Safety blocks map to
// models.ErrBlockedContent, transport and API failures to
// models.ErrGenerationUnavailable and blank output to models.ErrEmptyResult.
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(prompt), s.contentConfig())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timed out after %s", models.ErrGenerationUnavailable, s.Timeout)
		}
		return "", fmt.Errorf("%w: %w", models.ErrGenerationUnavailable, err)
	}

	if reason := blockReason(result); reason != "" {
		return "", fmt.Errorf("%w: %s", models.ErrBlockedContent, reason)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", models.ErrEmptyResult
	}
	return text, nil
}

func blockReason(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return string(fb.BlockReason)
	}
	if len(result.Candidates) == 0 || result.Candidates[0] == nil {
		return ""
	}
	switch reason := result.Candidates[0].FinishReason; reason {
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent, genai.FinishReasonSPII:
		return string(reason)
	}
	return ""
}
