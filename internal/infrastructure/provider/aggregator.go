package provider

import (
	"context"
	"log/slog"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/ports"
	"ComplianceScanner/internal/source"
)

// Default tier names in the adapter registry.
const (
	TierPrimary   = "csrc"
	TierSecondary = "google"
	TierFallback  = "static"
)

// gated is implemented by adapters that may be disabled by configuration.
type gated interface {
	Configured() bool
}

// fetchOutcome is the per-call result consumed by the degradation logic.
// An errored call degrades to zero results for that adapter/term pair.
type fetchOutcome struct {
	adapter string
	term    string
	docs    []domain.Document
	err     error
}

func (o fetchOutcome) failed() bool {
	return o.err != nil
}

// AggregatorDeps wires the adapter registry into the aggregation policy.
type AggregatorDeps struct {
	Registry       *source.Registry
	Primary        string
	Secondary      string
	Fallback       string
	SearchTerms    []string
	MaxSearchTerms int
	Logger         *slog.Logger
}

// Aggregator merges ranked adapter outputs until the target count is met,
// degrading monotonically toward the static fallback. It never fails for
// network-class reasons; a missing or broken tier only shrinks its output.
type Aggregator struct {
	registry    *source.Registry
	primary     string
	secondary   string
	fallback    string
	searchTerms []string
	maxTerms    int
	logger      *slog.Logger
}

var _ ports.DocumentSource = (*Aggregator)(nil)

// NewAggregator constructs the aggregation component. Empty tier names keep
// the default registry names.
func NewAggregator(deps AggregatorDeps) *Aggregator {
	maxTerms := deps.MaxSearchTerms
	if maxTerms <= 0 {
		maxTerms = 3
	}
	a := &Aggregator{
		registry:    deps.Registry,
		primary:     deps.Primary,
		secondary:   deps.Secondary,
		fallback:    deps.Fallback,
		searchTerms: deps.SearchTerms,
		maxTerms:    maxTerms,
		logger:      deps.Logger,
	}
	if a.primary == "" {
		a.primary = TierPrimary
	}
	if a.secondary == "" {
		a.secondary = TierSecondary
	}
	if a.fallback == "" {
		a.fallback = TierFallback
	}
	return a
}

// Aggregate retrieves up to maxResults documents for the topic. Fewer may be
// returned only when even the fallback corpus is smaller than requested.
func (a *Aggregator) Aggregate(ctx context.Context, topic string, maxResults int) []domain.Document {
	if maxResults <= 0 {
		return nil
	}

	terms := a.searchTerms
	if topic != "" {
		terms = append(append([]string{}, terms...), topic)
	}
	if len(terms) > a.maxTerms {
		// Rate-limit containment: only the leading terms hit the live source.
		terms = terms[:a.maxTerms]
	}

	var collected []domain.Document

	if primary := a.resolve(a.primary); primary != nil {
		perTerm := maxResults / 3
		for _, term := range terms {
			outcome := a.tryFetch(ctx, primary, term, perTerm)
			collected = append(collected, outcome.docs...)
			if len(collected) >= maxResults {
				break
			}
		}
	}

	if len(collected) < maxResults {
		if secondary := a.resolve(a.secondary); secondaryAvailable(secondary) {
			outcome := a.tryFetch(ctx, secondary, topic, maxResults-len(collected))
			collected = append(collected, outcome.docs...)
		}
	}

	fallback := a.resolve(a.fallback)

	if len(collected) < maxResults && fallback != nil {
		shortfall := maxResults - len(collected)
		a.debug("filling shortfall from fallback corpus", "have", len(collected), "need", shortfall)
		outcome := a.tryFetch(ctx, fallback, topic, shortfall)
		collected = append(collected, outcome.docs...)
	}

	if len(collected) == 0 && fallback != nil {
		a.debug("no documents from any source, retrying fallback for full budget")
		outcome := a.tryFetch(ctx, fallback, topic, maxResults)
		collected = outcome.docs
	}

	if len(collected) > maxResults {
		collected = collected[:maxResults]
	}
	return collected
}

// tryFetch wraps one adapter call into an outcome; errors are logged here and
// never travel further up.
func (a *Aggregator) tryFetch(ctx context.Context, adapter source.Adapter, term string, limit int) fetchOutcome {
	docs, err := adapter.Fetch(ctx, term, limit)
	outcome := fetchOutcome{adapter: adapter.Name(), term: term, docs: docs, err: err}
	if outcome.failed() {
		if a.logger != nil {
			a.logger.Error("adapter fetch failed",
				"adapter", outcome.adapter, "term", outcome.term, "error", outcome.err)
		}
		outcome.docs = nil
	}
	return outcome
}

func (a *Aggregator) resolve(name string) source.Adapter {
	if a.registry == nil {
		return nil
	}
	adapter, err := a.registry.Resolve(name)
	if err != nil {
		a.debug("tier unavailable", "adapter", name, "error", err)
		return nil
	}
	return adapter
}

func secondaryAvailable(adapter source.Adapter) bool {
	if adapter == nil {
		return false
	}
	if g, ok := adapter.(gated); ok && !g.Configured() {
		return false
	}
	return true
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
