package handler

import (
	"net/http"

	"review-metrics-service/internal/domain"
	"review-metrics-service/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ReviewHandler обрабатывает intake батчей событий ревью.
type ReviewHandler struct {
	*BaseHandler
	eventBus domain.EventBus
}

// NewReviewHandler создает новый экземпляр ReviewHandler.
func NewReviewHandler(eventBus domain.EventBus, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler: NewBaseHandler(logger),
		eventBus:    eventBus,
	}
}

// ProcessReviewEventsBatch обрабатывает POST запрос с батчем событий ревью.
// Сначала валидируются все события батча; при любом нарушении батч
// отклоняется целиком и ни одно событие не диспатчится. Валидный батч
// публикуется в шину в порядке поступления событий.
func (h *ReviewHandler) ProcessReviewEventsBatch(c echo.Context) error {
	logEntry := h.logRequest(c, "process_review_events_batch")

	var events []domain.ReviewEvent
	if err := c.Bind(&events); err != nil {
		logEntry.WithError(err).Warn("Failed to bind review events")
		return c.JSON(http.StatusBadRequest, toErrorResponse("BAD_REQUEST", "invalid request body"))
	}

	logEntry.WithField("events_count", len(events)).Info("Received review events for processing")

	if err := validation.ValidateBatch(events); err != nil {
		logEntry.WithError(err).Warn("Validation failed for review events")
		return c.JSON(http.StatusBadRequest, toErrorResponse("VALIDATION_FAILED", err.Error()))
	}

	ctx := c.Request().Context()
	for _, event := range events {
		var err error
		switch event.Type {
		case domain.EventTypeReviewStarted:
			err = h.eventBus.Publish(ctx, domain.ReviewStarted{
				ReviewID:  event.ReviewID,
				AuthorID:  event.AuthorID,
				Timestamp: event.Timestamp.Time,
			})
		case domain.EventTypeReviewCompleted:
			err = h.eventBus.Publish(ctx, domain.ReviewCompleted{
				ReviewID:    event.ReviewID,
				AuthorID:    event.AuthorID,
				Timestamp:   event.Timestamp.Time,
				LinesOfCode: *event.LinesOfCode,
			})
		default:
			// Недостижимо после валидации
			logEntry.WithField("event_type", event.Type).Error("Invalid review event type")
			return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_EVENT_TYPE", domain.ErrInvalidEventType.Error()))
		}
		if err != nil {
			logEntry.WithError(err).Error("Failed to publish review event")
			return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", "failed to publish review event"))
		}
	}

	logEntry.WithField("events_count", len(events)).Info("Successfully queued review events for processing")
	return c.NoContent(http.StatusOK)
}
