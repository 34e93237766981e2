package domain

import "context"

// EventUseCase определяет бизнес-логику обработки событий ревью.
type EventUseCase interface {
	HandleReviewStarted(ctx context.Context, event ReviewStarted) error
	HandleReviewCompleted(ctx context.Context, event ReviewCompleted) error
}

// MetricsUseCase определяет бизнес-логику чтения метрик авторов.
type MetricsUseCase interface {
	GetAuthorMetrics(ctx context.Context, authorID string) (*AuthorMetrics, error)
	ListAuthorMetrics(ctx context.Context) ([]*AuthorMetrics, error)
}

// EventBus определяет контракт шины событий между intake и обработчиками.
type EventBus interface {
	Publish(ctx context.Context, event Event) error
}
