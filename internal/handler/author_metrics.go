package handler

import (
	"net/http"

	"review-metrics-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AuthorHandler обрабатывает HTTP-запросы чтения метрик авторов.
type AuthorHandler struct {
	*BaseHandler
	metricsUseCase domain.MetricsUseCase
}

// NewAuthorHandler создает новый экземпляр AuthorHandler.
func NewAuthorHandler(metricsUseCase domain.MetricsUseCase, logger *logrus.Logger) *AuthorHandler {
	return &AuthorHandler{
		BaseHandler:    NewBaseHandler(logger),
		metricsUseCase: metricsUseCase,
	}
}

// GetAuthorMetrics обрабатывает GET запрос метрик одного автора.
func (h *AuthorHandler) GetAuthorMetrics(c echo.Context) error {
	logEntry := h.logRequest(c, "get_author_metrics")
	authorID := c.Param("authorId")
	logEntry = logEntry.WithField("author_id", authorID)
	logEntry.Info("Getting author review metrics")

	metrics, err := h.metricsUseCase.GetAuthorMetrics(c.Request().Context(), authorID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to get author metrics")
		if httpErr, ok := domain.ToHTTPError(err); ok {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.Info("Author metrics retrieved")
	return c.JSON(http.StatusOK, metrics)
}

// ListAllAuthorsMetrics обрабатывает GET запрос метрик всех авторов.
func (h *AuthorHandler) ListAllAuthorsMetrics(c echo.Context) error {
	logEntry := h.logRequest(c, "list_all_authors_metrics")
	logEntry.Info("Listing review metrics for all authors")

	metrics, err := h.metricsUseCase.ListAuthorMetrics(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to list author metrics")
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("authors_count", len(metrics)).Info("Author metrics listed")
	return c.JSON(http.StatusOK, metrics)
}
