package relevance

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"ComplianceScanner/internal/domain"
)

func TestScoreIsBounded(t *testing.T) {
	t.Parallel()

	scorer := NewKeywordScorer(nil)
	ctx := context.Background()

	docs := []domain.Document{
		{},
		{Title: "completely unrelated gardening newsletter"},
		{Title: strings.Join(vocabulary, " "), Summary: strings.Join(vocabulary, " ")},
		{Title: "NIST SP 800-53 security controls", Source: "NIST CSRC (Demo)"},
	}

	for _, doc := range docs {
		score, err := scorer.Score(ctx, doc)
		if err != nil {
			t.Fatalf("Score returned error: %v", err)
		}
		if score < 0.0 || score > 1.0 {
			t.Fatalf("score %f out of [0,1] for doc %q", score, doc.Title)
		}
	}
}

func TestScoreAllKeywordsHitsCeiling(t *testing.T) {
	t.Parallel()

	scorer := NewKeywordScorer(nil)
	doc := domain.Document{Content: strings.Join(vocabulary, " ")}

	score, err := scorer.Score(context.Background(), doc)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if score != 1.0 {
		t.Fatalf("expected ceiling score 1.0, got %f", score)
	}
}

func TestDemoSourceFloor(t *testing.T) {
	t.Parallel()

	scorer := NewKeywordScorer(nil)
	ctx := context.Background()

	for _, src := range []string{"NIST CSRC (Demo)", "demo", "DEMO feed", "local-Demo-corpus"} {
		doc := domain.Document{Title: "nothing matching here", Source: src}
		score, err := scorer.Score(ctx, doc)
		if err != nil {
			t.Fatalf("Score returned error: %v", err)
		}
		if score < 0.8 {
			t.Fatalf("source %q: expected score >= 0.8, got %f", src, score)
		}
	}
}

func TestMoreKeywordsNeverLowerScore(t *testing.T) {
	t.Parallel()

	scorer := NewKeywordScorer(nil)
	ctx := context.Background()

	doc := domain.Document{Content: "plain text about nothing in particular"}
	prev, err := scorer.Score(ctx, doc)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	for _, keyword := range []string{"sbom", "devops", "supply chain", "authentication"} {
		doc.Content += " " + keyword
		score, err := scorer.Score(ctx, doc)
		if err != nil {
			t.Fatalf("Score returned error: %v", err)
		}
		if score < prev {
			t.Fatalf("adding %q decreased score from %f to %f", keyword, prev, score)
		}
		prev = score
	}
}

func TestScoreSamplesOnlyContentHead(t *testing.T) {
	t.Parallel()

	scorer := NewKeywordScorer(nil)
	ctx := context.Background()

	// A keyword buried past the 1000-char sample must not count.
	padding := strings.Repeat("x", 1200)
	buried, err := scorer.Score(ctx, domain.Document{Content: padding + " sbom"})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	baseline, err := scorer.Score(ctx, domain.Document{Content: padding})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if buried != baseline {
		t.Fatalf("keyword past sample bound changed score: %f vs %f", buried, baseline)
	}
}

func TestTruncateAtRuneNeverSplitsRunes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s    string
		n    int
		want string
	}{
		{"abcdef", 3, "abc"},
		{"ab安cd", 3, "ab"},   // cut lands inside the 3-byte rune
		{"ab安cd", 5, "ab安"},  // cut lands exactly after it
		{"安安安", 4, "安"},
	}
	for _, tc := range cases {
		got := truncateAtRune(tc.s, tc.n)
		if got != tc.want {
			t.Fatalf("truncateAtRune(%q, %d) = %q, want %q", tc.s, tc.n, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("truncateAtRune(%q, %d) produced invalid UTF-8", tc.s, tc.n)
		}
	}
}

func TestFilterKeepsScoresAboveThreshold(t *testing.T) {
	t.Parallel()

	docs := []domain.Document{
		{Title: "a", RelevanceScore: 0.9},
		{Title: "b", RelevanceScore: 0.7},
		{Title: "c", RelevanceScore: 0.71},
		{Title: "d", RelevanceScore: 0.2},
	}

	kept := Filter(docs)
	if len(kept) != 2 {
		t.Fatalf("expected 2 documents kept, got %d", len(kept))
	}
	if kept[0].Title != "a" || kept[1].Title != "c" {
		t.Fatalf("unexpected retained set: %q, %q", kept[0].Title, kept[1].Title)
	}
}
