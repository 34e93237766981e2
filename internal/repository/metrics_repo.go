package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"review-metrics-service/internal/domain"
)

// MetricsRepository реализует domain.MetricsRepository поверх сохраненных
// метрик: кэшированные агрегаты читаются из строки автора, счетчики ревью
// выводятся из леджера прямо в запросе.
type MetricsRepository struct {
	db *sql.DB
}

// NewMetricsRepository создает новый экземпляр MetricsRepository.
func NewMetricsRepository(db *sql.DB) domain.MetricsRepository {
	return &MetricsRepository{
		db: db,
	}
}

const authorMetricsQuery = `
	SELECT
		a.author_id,
		COUNT(r.review_id) FILTER (WHERE r.completed_timestamp IS NOT NULL) AS completed_reviews,
		COUNT(r.review_id) AS total_reviews,
		a.total_lines_of_code_reviewed,
		a.lines_of_code_reviewed_per_hour,
		a.average_review_duration
	FROM authors a
	LEFT JOIN reviews r ON r.author_id = a.author_id`

// GetAuthorMetrics возвращает проекцию метрик одного автора.
func (r *MetricsRepository) GetAuthorMetrics(ctx context.Context, authorID string) (*domain.AuthorMetrics, error) {
	row := r.db.QueryRowContext(ctx, authorMetricsQuery+" WHERE a.author_id = $1 GROUP BY a.author_id", authorID)

	metrics, err := scanAuthorMetrics(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author metrics: %w", err)
	}

	return metrics, nil
}

// ListAuthorMetrics возвращает проекции метрик всех известных авторов.
// Отсутствие авторов — пустой список, а не ошибка.
func (r *MetricsRepository) ListAuthorMetrics(ctx context.Context) ([]*domain.AuthorMetrics, error) {
	rows, err := r.db.QueryContext(ctx, authorMetricsQuery+" GROUP BY a.author_id ORDER BY a.author_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list author metrics: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.AuthorMetrics, 0)
	for rows.Next() {
		metrics, err := scanAuthorMetrics(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author metrics: %w", err)
		}
		result = append(result, metrics)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author metrics: %w", err)
	}

	return result, nil
}

func scanAuthorMetrics(scan func(dest ...any) error) (*domain.AuthorMetrics, error) {
	metrics := &domain.AuthorMetrics{}
	var avgDuration sql.NullFloat64

	err := scan(
		&metrics.AuthorID,
		&metrics.CompletedReviews,
		&metrics.TotalReviews,
		&metrics.TotalLinesOfCodeReviewed,
		&metrics.LinesOfCodeReviewedPerHour,
		&avgDuration,
	)
	if err != nil {
		return nil, err
	}

	if avgDuration.Valid {
		metrics.AverageReviewDurationSeconds = &avgDuration.Float64
	}

	return metrics, nil
}
