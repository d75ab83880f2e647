// Package relevance implements the deterministic keyword-density scorer used
// to decide which publications matter to IT/software-development teams.
package relevance

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/ports"
)

const (
	// contentSampleLength bounds how much body text participates in scoring.
	contentSampleLength = 1000

	// demoScoreFloor is the minimum raw score for hand-curated demo content,
	// which is assumed relevant by construction.
	demoScoreFloor = 0.8

	// scoreBoost compensates for the vocabulary's sparsity; real documents
	// typically match only a few terms.
	scoreBoost = 3.0

	// RelevanceThreshold is the filter cutoff: documents scoring at or below
	// it are excluded from the report.
	RelevanceThreshold = 0.7
)

// vocabulary is the fixed set of security/software-development/compliance
// markers counted during scoring.
var vocabulary = []string{
	"software", "development", "sdlc", "ci/cd", "devops", "pipeline",
	"container", "cloud", "security", "secure", "sast", "dast", "sbom",
	"supply chain", "cui", "pii", "authentication", "access", "control",
	"nist", "framework", "cybersecurity", "compliance", "controls",
	"sp 800", "800-53", "800-171", "800-218", "ssdf", "guidance",
}

// KeywordScorer computes a bounded relevance score from keyword density.
type KeywordScorer struct {
	logger *slog.Logger
}

var _ ports.RelevanceScorer = (*KeywordScorer)(nil)

// NewKeywordScorer constructs the deterministic scoring strategy.
func NewKeywordScorer(logger *slog.Logger) *KeywordScorer {
	return &KeywordScorer{logger: logger}
}

// Score returns a relevance estimate in [0, 1]. It never fails.
func (s *KeywordScorer) Score(ctx context.Context, doc domain.Document) (float64, error) {
	content := doc.Content
	if len(content) > contentSampleLength {
		content = truncateAtRune(content, contentSampleLength)
	}
	text := strings.ToLower(doc.Title + " " + doc.Summary + " " + content)

	matches := 0
	for _, keyword := range vocabulary {
		if strings.Contains(text, keyword) {
			matches++
		}
	}

	score := float64(matches) / float64(len(vocabulary))

	if strings.Contains(strings.ToLower(doc.Source), "demo") {
		score = max(score, demoScoreFloor)
	}

	final := min(score*scoreBoost, 1.0)

	if s.logger != nil {
		s.logger.Info("scored document",
			"title", truncateTitle(doc.Title), "score", final, "matches", matches)
	}

	return final, nil
}

// Filter retains the documents whose assigned score exceeds the threshold,
// preserving input order.
func Filter(docs []domain.Document) []domain.Document {
	kept := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.RelevanceScore > RelevanceThreshold {
			kept = append(kept, doc)
		}
	}
	return kept
}

func truncateTitle(title string) string {
	if len(title) > 50 {
		return truncateAtRune(title, 50) + "..."
	}
	return title
}

// truncateAtRune cuts s to at most n bytes without splitting a UTF-8 rune.
func truncateAtRune(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
