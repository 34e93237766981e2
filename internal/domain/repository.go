package domain

import "context"

// AuthorMetrics — проекция метрик автора для query-поверхности.
type AuthorMetrics struct {
	AuthorID                     string   `json:"authorId"`
	CompletedReviews             int64    `json:"completedReviews"`
	TotalReviews                 int64    `json:"totalReviews"`
	TotalLinesOfCodeReviewed     float64  `json:"totalLinesOfCodeReviewed"`
	LinesOfCodeReviewedPerHour   float64  `json:"linesOfCodeReviewedPerHour"`
	AverageReviewDurationSeconds *float64 `json:"averageReviewDuration"`
}

// AuthorRepository определяет контракт для работы с хранилищем авторов
// и их леджеров.
type AuthorRepository interface {
	// GetWithReviews возвращает автора вместе с его леджером.
	// Возвращает ErrAuthorNotFound, если автора нет.
	GetWithReviews(ctx context.Context, authorID string) (*Author, error)

	// Mutate выполняет сериализованный read-modify-write для одного автора:
	// загружает автора с леджером (nil, если автора еще нет), применяет fn
	// и атомарно сохраняет возвращенного автора вместе с ревью.
	// Конкурентные мутации одного authorID не пересекаются; ошибка fn
	// откатывает транзакцию без частичного применения.
	Mutate(ctx context.Context, authorID string, fn func(author *Author) (*Author, error)) error
}

// MetricsRepository определяет контракт для чтения сохраненных метрик.
type MetricsRepository interface {
	// GetAuthorMetrics возвращает проекцию метрик одного автора.
	// Возвращает ErrAuthorNotFound, если автора нет.
	GetAuthorMetrics(ctx context.Context, authorID string) (*AuthorMetrics, error)

	// ListAuthorMetrics возвращает проекции всех известных авторов.
	ListAuthorMetrics(ctx context.Context) ([]*AuthorMetrics, error)
}
