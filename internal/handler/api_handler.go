package handler

import (
	"review-metrics-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*ReviewHandler
	*AuthorHandler
}

func NewAPIHandler(
	eventBus domain.EventBus,
	metricsUseCase domain.MetricsUseCase,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		ReviewHandler: NewReviewHandler(eventBus, logger),
		AuthorHandler: NewAuthorHandler(metricsUseCase, logger),
	}
}

// RegisterRoutes регистрирует маршруты сервиса.
func (h *APIHandler) RegisterRoutes(e *echo.Echo) {
	apiGroup := e.Group("/api")

	apiGroup.POST("/reviews/", h.ProcessReviewEventsBatch)
	apiGroup.GET("/authors/", h.ListAllAuthorsMetrics)
	apiGroup.GET("/authors/:authorId/", h.GetAuthorMetrics)
}
