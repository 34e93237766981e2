package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"review-metrics-service/internal/domain"
)

// AuthorRepository реализует взаимодействие с леджерами авторов в PostgreSQL.
type AuthorRepository struct {
	db *sql.DB
}

// NewAuthorRepository создает новый экземпляр AuthorRepository.
func NewAuthorRepository(db *sql.DB) domain.AuthorRepository {
	return &AuthorRepository{
		db: db,
	}
}

// GetWithReviews возвращает автора вместе с его леджером.
func (r *AuthorRepository) GetWithReviews(ctx context.Context, authorID string) (*domain.Author, error) {
	author, err := getAuthorWithReviews(ctx, r.db, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.ErrAuthorNotFound
	}
	return author, nil
}

// Mutate выполняет сериализованный read-modify-write для одного автора.
// Advisory-lock на ключе автора берется до чтения, поэтому конкурентные
// обработчики одного authorID выстраиваются в очередь еще до того, как
// строка автора появится в таблице; мутации разных авторов идут параллельно.
func (r *AuthorRepository) Mutate(ctx context.Context, authorID string, fn func(author *domain.Author) (*domain.Author, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Сериализуем мутации по ключу автора
	_, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", authorID)
	if err != nil {
		return fmt.Errorf("failed to acquire author lock: %w", err)
	}

	// 2. Загружаем автора с леджером (nil, если автора еще нет)
	var author *domain.Author
	author, err = getAuthorWithReviews(ctx, tx, authorID)
	if err != nil {
		return err
	}

	// 3. Применяем мутацию
	var updated *domain.Author
	updated, err = fn(author)
	if err != nil {
		return err
	}

	// 4. Сохраняем автора и все ревью в одной транзакции
	if err = upsertAuthor(ctx, tx, updated); err != nil {
		return err
	}

	// 5. Коммитим транзакцию
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// querier — общий интерфейс для *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getAuthorWithReviews(ctx context.Context, q querier, authorID string) (*domain.Author, error) {
	author := &domain.Author{}
	var avgDuration sql.NullFloat64

	err := q.QueryRowContext(ctx, `
		SELECT author_id, total_lines_of_code_reviewed, lines_of_code_reviewed_per_hour, average_review_duration
		FROM authors
		WHERE author_id = $1`,
		authorID,
	).Scan(
		&author.ID,
		&author.TotalLinesOfCodeReviewed,
		&author.LinesOfCodeReviewedPerHour,
		&avgDuration,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	if avgDuration.Valid {
		author.AverageReviewDurationSeconds = &avgDuration.Float64
	}

	rows, err := q.QueryContext(ctx, `
		SELECT review_id, started_timestamp, completed_timestamp, lines_of_code
		FROM reviews
		WHERE author_id = $1
		ORDER BY started_timestamp, review_id`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		review := &domain.Review{}
		if err := rows.Scan(&review.ID, &review.StartedAt, &review.CompletedAt, &review.LinesOfCode); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		author.Reviews = append(author.Reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return author, nil
}

func upsertAuthor(ctx context.Context, q querier, author *domain.Author) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO authors (author_id, total_lines_of_code_reviewed, lines_of_code_reviewed_per_hour, average_review_duration)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (author_id) DO UPDATE SET
			total_lines_of_code_reviewed    = EXCLUDED.total_lines_of_code_reviewed,
			lines_of_code_reviewed_per_hour = EXCLUDED.lines_of_code_reviewed_per_hour,
			average_review_duration         = EXCLUDED.average_review_duration`,
		author.ID,
		author.TotalLinesOfCodeReviewed,
		author.LinesOfCodeReviewedPerHour,
		author.AverageReviewDurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert author: %w", err)
	}

	for _, review := range author.Reviews {
		_, err := q.ExecContext(ctx, `
			INSERT INTO reviews (author_id, review_id, started_timestamp, completed_timestamp, lines_of_code)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (author_id, review_id) DO UPDATE SET
				started_timestamp   = EXCLUDED.started_timestamp,
				completed_timestamp = EXCLUDED.completed_timestamp,
				lines_of_code       = EXCLUDED.lines_of_code`,
			author.ID,
			review.ID,
			review.StartedAt,
			review.CompletedAt,
			review.LinesOfCode,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert review %s: %w", review.ID, err)
		}
	}

	return nil
}
