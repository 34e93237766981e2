package usecase

import (
	"context"

	"review-metrics-service/internal/domain"

	"github.com/sirupsen/logrus"
)

// EventUseCase реализует обработку событий жизненного цикла ревью.
type EventUseCase struct {
	authorRepo domain.AuthorRepository
	logger     *logrus.Logger
}

// NewEventUseCase создает новый экземпляр EventUseCase.
func NewEventUseCase(authorRepo domain.AuthorRepository, logger *logrus.Logger) domain.EventUseCase {
	return &EventUseCase{
		authorRepo: authorRepo,
		logger:     logger,
	}
}

// HandleReviewStarted применяет событие начала ревью к леджеру автора.
// Автор создается неявно, если его еще нет. Повторное событие начала
// перезаписывает StartedAt (last-write-wins) и не трогает завершение —
// обработка идемпотентна при повторной доставке.
func (uc *EventUseCase) HandleReviewStarted(ctx context.Context, event domain.ReviewStarted) error {
	logEntry := uc.logger.WithFields(logrus.Fields{
		"review_id": event.ReviewID,
		"author_id": event.AuthorID,
	})
	logEntry.Info("Processing ReviewStarted")

	err := uc.authorRepo.Mutate(ctx, event.AuthorID, func(author *domain.Author) (*domain.Author, error) {
		if author == nil {
			author = &domain.Author{ID: event.AuthorID}
		}

		if review := author.FindReview(event.ReviewID); review != nil {
			review.StartedAt = event.Timestamp
		} else {
			author.Reviews = append(author.Reviews, &domain.Review{
				ID:        event.ReviewID,
				StartedAt: event.Timestamp,
			})
		}

		// Незавершенные ревью не влияют на метрики, но пересчет гарантирует,
		// что сохраненная строка автора всегда согласована с леджером.
		author.UpdateMetrics()
		return author, nil
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to process ReviewStarted")
		return err
	}

	logEntry.Info("Successfully processed ReviewStarted")
	return nil
}

// HandleReviewCompleted применяет событие завершения ревью.
// В отличие от начала, завершение строгое: автор и ревью обязаны
// существовать, а завершить ревью можно ровно один раз. Мутация ревью
// и пересчитанные метрики сохраняются атомарно.
func (uc *EventUseCase) HandleReviewCompleted(ctx context.Context, event domain.ReviewCompleted) error {
	logEntry := uc.logger.WithFields(logrus.Fields{
		"review_id": event.ReviewID,
		"author_id": event.AuthorID,
	})
	logEntry.Info("Processing ReviewCompleted")

	err := uc.authorRepo.Mutate(ctx, event.AuthorID, func(author *domain.Author) (*domain.Author, error) {
		if author == nil {
			return nil, domain.ErrAuthorNotFound
		}

		review := author.FindReview(event.ReviewID)
		if review == nil {
			return nil, domain.ErrReviewNotFound
		}
		if review.Completed() {
			return nil, domain.ErrReviewAlreadyCompleted
		}

		completedAt := event.Timestamp
		linesOfCode := event.LinesOfCode
		review.CompletedAt = &completedAt
		review.LinesOfCode = &linesOfCode

		author.UpdateMetrics()
		return author, nil
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to process ReviewCompleted")
		return err
	}

	logEntry.Info("Successfully processed ReviewCompleted")
	return nil
}
