package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/pkg/logger"
)

// UploadSummaryRepository stores batch summaries. Rows are insert-only.
type UploadSummaryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUploadSummaryRepository creates a new UploadSummaryRepository
func NewUploadSummaryRepository(db *pgxpool.Pool) *UploadSummaryRepository {
	return &UploadSummaryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateSummary inserts summary and fills in its ID
func (r *UploadSummaryRepository) CreateSummary(ctx context.Context, summary *models.UploadSummary) error {
	sql, args, err := r.sb.Insert("upload_summaries").
		Columns("department", "uploaded_count", "error_count", "source_file", "uploaded_at").
		Values(summary.Department, summary.UploadedCount, summary.ErrorCount, summary.SourceFile, summary.UploadedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create summary query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&summary.ID); err != nil {
		logger.Error().Err(err).Str("department", summary.Department).Msg("Error inserting upload summary")
		return fmt.Errorf("error creating upload summary: %w", err)
	}
	return nil
}

// ListSummaries returns one page of summaries, newest first, and the total match count
func (r *UploadSummaryRepository) ListSummaries(ctx context.Context, filter models.SummaryFilter) ([]*models.UploadSummary, int64, error) {
	where := squirrel.And{}
	if filter.Department != "" {
		where = append(where, squirrel.Eq{"department": filter.Department})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("upload_summaries").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count summaries query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	if total == 0 {
		return []*models.UploadSummary{}, 0, nil
	}

	sql, args, err := r.sb.Select("id", "department", "uploaded_count", "error_count", "source_file", "uploaded_at").
		From("upload_summaries").
		Where(where).
		OrderBy("uploaded_at DESC", "id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list summaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.UploadSummary, 0, filter.Limit)
	for rows.Next() {
		var s models.UploadSummary
		if err := rows.Scan(&s.ID, &s.Department, &s.UploadedCount, &s.ErrorCount, &s.SourceFile, &s.UploadedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}
