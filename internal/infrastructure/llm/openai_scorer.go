package llm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"

	"ComplianceScanner/internal/config"
	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/ports"
)

const scoringPrompt = "You rate NIST publications for relevance to IT software development " +
	"organizations. Reply with a single number between 0.0 and 1.0 and nothing else."

// OpenAIScorer is the model-backed relevance strategy. It implements the same
// port as the keyword scorer and can replace it without touching the pipeline.
type OpenAIScorer struct {
	client *openai.Client
	model  string
}

var _ ports.RelevanceScorer = (*OpenAIScorer)(nil)

// NewOpenAIScorer builds a scorer from configuration.
func NewOpenAIScorer(cfg config.OpenAIConfig) *OpenAIScorer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIScorer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Score asks the model for a relevance estimate and clamps it to [0, 1].
func (s *OpenAIScorer) Score(ctx context.Context, doc domain.Document) (float64, error) {
	if s == nil || s.client == nil {
		return 0, errors.New("openai scorer is not configured")
	}

	content := doc.Content
	if len(content) > 1000 {
		content = content[:1000]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scoringPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Title: %s\nSummary: %s\nContent: %s",
					doc.Title, doc.Summary, content),
			},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("score document %q: %w", doc.Title, err)
	}

	if len(resp.Choices) == 0 {
		return 0, errors.New("no scoring response generated")
	}

	return parseScore(resp.Choices[0].Message.Content)
}

func parseScore(reply string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, fmt.Errorf("parse model score %q: %w", reply, err)
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
