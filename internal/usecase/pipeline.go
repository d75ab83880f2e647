package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/ports"
	"ComplianceScanner/internal/relevance"
	"ComplianceScanner/internal/report"
)

// Reportable emptiness conditions. Callers map these to distinct not-found
// outcomes; everything else the pipeline absorbs by degrading.
var (
	ErrNoDocuments         = errors.New("no publications found from any source")
	ErrNoRelevantDocuments = errors.New("no publications relevant to IT organizations")
)

// Degraded-success placeholders, surfaced in place of real locations.
const (
	publishFailedNote  = "GitHub publishing failed - summary generated successfully"
	publisherAbsentURL = "GitHub not configured - summary generated successfully"
	publisherAbsentPR  = "GitHub not configured - no PR created"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.DocumentSource
	Extractor  ports.ContentExtractor
	Scorer     ports.RelevanceScorer
	Publisher  ports.ReportPublisher
	Repository ports.ReportRepository
	Logger     *slog.Logger
	Now        func() time.Time
}

// Pipeline implements the retrieve-extract-score-render-publish workflow.
// All state is local to one Run invocation; concurrent runs share nothing
// but the underlying HTTP client.
type Pipeline struct {
	source     ports.DocumentSource
	extractor  ports.ContentExtractor
	scorer     ports.RelevanceScorer
	publisher  ports.ReportPublisher
	repository ports.ReportRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		source:     deps.Source,
		extractor:  deps.Extractor,
		scorer:     deps.Scorer,
		publisher:  deps.Publisher,
		repository: deps.Repository,
		logger:     deps.Logger,
		now:        now,
	}
}

// Run executes one full pipeline invocation. A smaller valid result always
// wins over an error: only the two emptiness conditions surface to the caller.
func (p *Pipeline) Run(ctx context.Context, topic string, maxArticles int) (domain.RunResult, error) {
	p.info("starting workflow", "topic", topic, "max_articles", maxArticles)

	docs := p.source.Aggregate(ctx, topic, maxArticles)
	if len(docs) == 0 {
		return domain.RunResult{}, ErrNoDocuments
	}
	p.info("retrieved publications", "count", len(docs))

	extracted := p.extractAll(ctx, docs)
	scored := p.scoreAll(ctx, extracted)

	relevant := relevance.Filter(scored)
	p.info("filtered for relevance", "before", len(scored), "after", len(relevant))
	if len(relevant) == 0 {
		return domain.RunResult{}, ErrNoRelevantDocuments
	}

	generatedAt := p.now()
	rendered := report.Render(relevant, generatedAt)

	result := p.publish(ctx, rendered, len(relevant))
	result.ArticlesProcessed = len(relevant)

	p.archive(ctx, domain.ReportRecord{
		Topic:             topic,
		Report:            rendered,
		ArticlesProcessed: len(relevant),
		SummaryURL:        result.SummaryURL,
		PRURL:             result.PRURL,
		GeneratedAt:       generatedAt,
	})

	return result, nil
}

// extractAll populates content per document, dropping the ones that fail.
func (p *Pipeline) extractAll(ctx context.Context, docs []domain.Document) []domain.Document {
	if p.extractor == nil {
		return docs
	}

	kept := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		extracted, err := p.extractor.Extract(ctx, doc)
		if err != nil {
			p.warn("content extraction failed, dropping document", "url", doc.URL, "error", err)
			continue
		}
		kept = append(kept, extracted)
	}
	return kept
}

// scoreAll assigns each document its relevance score, dropping documents the
// scorer cannot handle.
func (p *Pipeline) scoreAll(ctx context.Context, docs []domain.Document) []domain.Document {
	if p.scorer == nil {
		return docs
	}

	scored := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		score, err := p.scorer.Score(ctx, doc)
		if err != nil {
			p.warn("scoring failed, dropping document", "title", doc.Title, "error", err)
			continue
		}
		doc.RelevanceScore = score
		scored = append(scored, doc)
	}
	return scored
}

// publish distributes the report; failure is a degraded success, never an
// error, because the report itself was still generated.
func (p *Pipeline) publish(ctx context.Context, rendered string, docCount int) domain.RunResult {
	if p.publisher == nil {
		return domain.RunResult{
			Status:     "success",
			SummaryURL: publisherAbsentURL,
			PRURL:      publisherAbsentPR,
		}
	}

	published, err := p.publisher.Publish(ctx, rendered, docCount)
	if err != nil {
		p.warn("publishing failed", "error", err)
		return domain.RunResult{
			Status:     "success",
			SummaryURL: publishFailedNote,
			PRURL:      publishFailedNote,
		}
	}

	return domain.RunResult{
		Status:     "success",
		SummaryURL: published.SummaryURL,
		PRURL:      published.PRURL,
	}
}

func (p *Pipeline) archive(ctx context.Context, record domain.ReportRecord) {
	if p.repository == nil {
		return
	}
	if err := p.repository.SaveReport(ctx, record); err != nil {
		p.warn("archiving report failed", "error", err)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
