package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/ports"
)

// PostgresRepository archives completed runs into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ReportRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// SaveReport inserts one run snapshot.
func (r *PostgresRepository) SaveReport(ctx context.Context, record domain.ReportRecord) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("compliance_reports").
		Columns("topic", "report", "articles_processed", "summary_url", "pr_url", "generated_at").
		Values(record.Topic, record.Report, record.ArticlesProcessed,
			record.SummaryURL, record.PRURL, record.GeneratedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	return nil
}

// RecentReports returns the latest run snapshots, newest first.
func (r *PostgresRepository) RecentReports(ctx context.Context, limit int) ([]domain.ReportRecord, error) {
	if r.db == nil || limit <= 0 {
		return nil, nil
	}

	query, args, err := r.builder.
		Select("topic", "report", "articles_processed", "summary_url", "pr_url", "generated_at").
		From("compliance_reports").
		OrderBy("generated_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var records []domain.ReportRecord
	for rows.Next() {
		var rec domain.ReportRecord
		if err := rows.Scan(&rec.Topic, &rec.Report, &rec.ArticlesProcessed,
			&rec.SummaryURL, &rec.PRURL, &rec.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}
