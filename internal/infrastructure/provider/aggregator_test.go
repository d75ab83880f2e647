package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/source"
)

// stubAdapter is a scriptable source.Adapter for aggregation tests.
type stubAdapter struct {
	name       string
	docs       []domain.Document
	err        error
	configured bool
	calls      int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if limit <= 0 {
		return nil, nil
	}
	if limit > len(s.docs) {
		limit = len(s.docs)
	}
	return s.docs[:limit], nil
}

func (s *stubAdapter) Configured() bool { return s.configured }

func newTestAggregator(t *testing.T, adapters ...source.Adapter) *Aggregator {
	t.Helper()
	registry := source.NewRegistry()
	for _, a := range adapters {
		registry.Register(a)
	}
	return NewAggregator(AggregatorDeps{
		Registry:    registry,
		SearchTerms: []string{"NIST SP 800-53", "NIST SP 800-171", "NIST SP 800-218", "SSDF"},
	})
}

func makeDocs(n int) []domain.Document {
	docs := make([]domain.Document, n)
	for i := range docs {
		docs[i] = domain.Document{Title: fmt.Sprintf("doc-%d", i), URL: fmt.Sprintf("https://example.org/%d", i)}
	}
	return docs
}

func TestAggregateFallbackOnlyNonStarvation(t *testing.T) {
	t.Parallel()

	primary := &stubAdapter{name: TierPrimary, err: errors.New("connection refused")}
	fallback := NewStaticAdapter()
	agg := newTestAggregator(t, primary, fallback)

	for _, maxResults := range []int{1, 2, 3, 7} {
		got := agg.Aggregate(context.Background(), "", maxResults)
		want := maxResults
		if want > fallback.CorpusSize() {
			want = fallback.CorpusSize()
		}
		if len(got) != want {
			t.Fatalf("maxResults=%d: expected %d documents, got %d", maxResults, want, len(got))
		}
	}
}

func TestAggregateTruncatesToMaxResults(t *testing.T) {
	t.Parallel()

	primary := &stubAdapter{name: TierPrimary, docs: makeDocs(20)}
	agg := newTestAggregator(t, primary, NewStaticAdapter())

	got := agg.Aggregate(context.Background(), "", 6)
	if len(got) != 6 {
		t.Fatalf("expected exactly 6 documents, got %d", len(got))
	}
}

func TestAggregatePrimaryErrorDegradesToFallback(t *testing.T) {
	t.Parallel()

	primary := &stubAdapter{name: TierPrimary, err: errors.New("boom")}
	agg := newTestAggregator(t, primary, NewStaticAdapter())

	got := agg.Aggregate(context.Background(), "supply chain", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 fallback documents, got %d", len(got))
	}
	for _, doc := range got {
		if doc.Source != "NIST CSRC (Demo)" {
			t.Fatalf("expected demo provenance, got %q", doc.Source)
		}
	}
	if primary.calls == 0 {
		t.Fatal("primary adapter was never attempted")
	}
}

func TestAggregateSkipsUnconfiguredSecondary(t *testing.T) {
	t.Parallel()

	primary := &stubAdapter{name: TierPrimary, err: errors.New("down")}
	secondary := &stubAdapter{name: TierSecondary, docs: makeDocs(5), configured: false}
	agg := newTestAggregator(t, primary, secondary, NewStaticAdapter())

	_ = agg.Aggregate(context.Background(), "", 5)
	if secondary.calls != 0 {
		t.Fatalf("unconfigured secondary adapter was queried %d times", secondary.calls)
	}
}

func TestAggregateUsesConfiguredSecondaryForShortfall(t *testing.T) {
	t.Parallel()

	primary := &stubAdapter{name: TierPrimary, err: errors.New("down")}
	secondary := &stubAdapter{name: TierSecondary, docs: makeDocs(10), configured: true}
	agg := newTestAggregator(t, primary, secondary, NewStaticAdapter())

	got := agg.Aggregate(context.Background(), "", 5)
	if secondary.calls != 1 {
		t.Fatalf("expected 1 secondary query, got %d", secondary.calls)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 documents, got %d", len(got))
	}
	if got[0].Source == "NIST CSRC (Demo)" {
		t.Fatal("secondary results should precede fallback content")
	}
}

func TestAggregateRetriesFallbackWhenEverythingEmpty(t *testing.T) {
	t.Parallel()

	primary := &stubAdapter{name: TierPrimary}
	fallback := &stubAdapter{name: TierFallback, docs: makeDocs(3)}
	agg := newTestAggregator(t, primary, fallback)

	// The shortfall pass asks for maxResults/3-shaped portions first; whatever
	// happens, a non-empty fallback must leave the result non-empty.
	got := agg.Aggregate(context.Background(), "", 3)
	if len(got) == 0 {
		t.Fatal("expected non-empty result with a working fallback")
	}
}

func TestAggregateNonPositiveBudget(t *testing.T) {
	t.Parallel()

	agg := newTestAggregator(t, NewStaticAdapter())
	if got := agg.Aggregate(context.Background(), "", 0); got != nil {
		t.Fatalf("expected nil for zero budget, got %d documents", len(got))
	}
}
