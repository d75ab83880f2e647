package provider

import (
	"context"
	"fmt"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/source"
)

const googleResultCap = 10

// GoogleSearchAdapter queries Google Custom Search restricted to nist.gov.
// With either credential missing it is a configuration-gated no-op.
type GoogleSearchAdapter struct {
	apiKey   string
	engineID string
}

var _ source.Adapter = (*GoogleSearchAdapter)(nil)

// NewGoogleSearchAdapter builds the adapter; empty credentials are accepted.
func NewGoogleSearchAdapter(apiKey, engineID string) *GoogleSearchAdapter {
	return &GoogleSearchAdapter{apiKey: apiKey, engineID: engineID}
}

// Name identifies the strategy inside the registry.
func (a *GoogleSearchAdapter) Name() string {
	return "google"
}

// Configured reports whether both credentials are present.
func (a *GoogleSearchAdapter) Configured() bool {
	return a.apiKey != "" && a.engineID != ""
}

// Fetch executes one Custom Search call scoped to SP 800 material.
func (a *GoogleSearchAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	if !a.Configured() {
		return nil, nil
	}
	if limit <= 0 {
		return nil, nil
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create search service: %w", err)
	}

	topic := query
	if topic == "" {
		topic = "cybersecurity framework"
	}
	searchQuery := fmt.Sprintf("NIST SP 800 %s site:nist.gov", topic)

	call := svc.Cse.List().Context(ctx)
	call.Q(searchQuery)
	call.Cx(a.engineID)
	if limit > googleResultCap {
		limit = googleResultCap
	}
	call.Num(int64(limit))

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	docs := make([]domain.Document, 0, len(result.Items))
	for _, item := range result.Items {
		if len(docs) >= limit {
			break
		}
		docs = append(docs, domain.Document{
			Title:         item.Title,
			URL:           item.Link,
			PublishedDate: item.DisplayLink,
			Summary:       item.Snippet,
			Source:        "Google Search",
		})
	}

	return docs, nil
}
