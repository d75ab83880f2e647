package domain

import "time"

// Document is a core entity describing a publication moving through the pipeline.
// Content stays empty until extraction; RelevanceScore is assigned once by the
// scorer and not mutated afterwards.
type Document struct {
	Title          string
	URL            string
	PublishedDate  string
	Summary        string
	Source         string
	Content        string
	RelevanceScore float64
}

// RunResult is returned to callers of a single pipeline invocation.
type RunResult struct {
	Status            string
	SummaryURL        string
	PRURL             string
	ArticlesProcessed int
}

// PublishResult carries the locations produced by the publishing collaborator.
type PublishResult struct {
	SummaryURL string
	PRURL      string
	Branch     string
	FilePath   string
}

// ReportRecord is the persisted snapshot of one completed run.
type ReportRecord struct {
	Topic             string
	Report            string
	ArticlesProcessed int
	SummaryURL        string
	PRURL             string
	GeneratedAt       time.Time
}
