package usecase

import (
	"context"

	"review-metrics-service/internal/domain"
)

// MetricsUseCase реализует чтение сохраненных метрик авторов.
// Чтение никогда не запускает пересчет: отдается последний снапшот.
type MetricsUseCase struct {
	metricsRepo domain.MetricsRepository
}

// NewMetricsUseCase создает новый экземпляр MetricsUseCase.
func NewMetricsUseCase(metricsRepo domain.MetricsRepository) domain.MetricsUseCase {
	return &MetricsUseCase{
		metricsRepo: metricsRepo,
	}
}

// GetAuthorMetrics возвращает проекцию метрик одного автора.
func (uc *MetricsUseCase) GetAuthorMetrics(ctx context.Context, authorID string) (*domain.AuthorMetrics, error) {
	return uc.metricsRepo.GetAuthorMetrics(ctx, authorID)
}

// ListAuthorMetrics возвращает проекции метрик всех известных авторов.
func (uc *MetricsUseCase) ListAuthorMetrics(ctx context.Context) ([]*domain.AuthorMetrics, error) {
	return uc.metricsRepo.ListAuthorMetrics(ctx)
}
