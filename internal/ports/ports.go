package ports

import (
	"context"
	"time"

	"ComplianceScanner/internal/domain"
)

// DocumentSource retrieves candidate publications under the degradation policy.
// Implementations never fail for network-class reasons; they may return fewer
// documents than requested only when even the fallback corpus is smaller.
type DocumentSource interface {
	Aggregate(ctx context.Context, topic string, maxResults int) []domain.Document
}

// ContentExtractor populates a document's body text. A non-nil error means the
// document should be dropped from the run, not that the run failed.
type ContentExtractor interface {
	Extract(ctx context.Context, doc domain.Document) (domain.Document, error)
}

// RelevanceScorer estimates topical fit in [0, 1].
type RelevanceScorer interface {
	Score(ctx context.Context, doc domain.Document) (float64, error)
}

// ReportPublisher distributes a rendered report and returns its locations.
type ReportPublisher interface {
	Publish(ctx context.Context, report string, docCount int) (domain.PublishResult, error)
}

// ReportRepository archives completed runs for audit/history.
type ReportRepository interface {
	SaveReport(ctx context.Context, record domain.ReportRecord) error
	RecentReports(ctx context.Context, limit int) ([]domain.ReportRecord, error)
}

// Scheduler controls when periodic scans execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
