package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"review-metrics-service/internal/domain"
	"review-metrics-service/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEventBus struct {
	mu         sync.Mutex
	published  []domain.Event
	publishErr error
}

func (m *mockEventBus) Publish(ctx context.Context, event domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, event)
	return nil
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func postReviewEvents(t *testing.T, h *handler.ReviewHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ProcessReviewEventsBatch(c))
	return rec
}

func TestProcessReviewEventsBatch_ValidBatch_PublishesInOrder(t *testing.T) {
	bus := &mockEventBus{}
	h := handler.NewReviewHandler(bus, newTestLogger())

	body := `[
		{"type": "ReviewStarted", "reviewId": "r1", "authorId": "a1", "timestamp": "2024-01-01T10:00:00Z"},
		{"type": "ReviewCompleted", "reviewId": "r1", "authorId": "a1", "timestamp": "2024-01-01T12:00:00Z", "linesOfCode": 150}
	]`

	rec := postReviewEvents(t, h, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, bus.published, 2)

	started, ok := bus.published[0].(domain.ReviewStarted)
	require.True(t, ok)
	assert.Equal(t, "r1", started.ReviewID)
	assert.Equal(t, "a1", started.AuthorID)

	completed, ok := bus.published[1].(domain.ReviewCompleted)
	require.True(t, ok)
	assert.Equal(t, "r1", completed.ReviewID)
	assert.Equal(t, 150, completed.LinesOfCode)
}

func TestProcessReviewEventsBatch_NaiveTimestamp_NormalizedToUTC(t *testing.T) {
	bus := &mockEventBus{}
	h := handler.NewReviewHandler(bus, newTestLogger())

	body := `[{"type": "ReviewStarted", "reviewId": "r1", "authorId": "a1", "timestamp": "2024-01-01T10:00:00"}]`

	rec := postReviewEvents(t, h, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, bus.published, 1)
	started := bus.published[0].(domain.ReviewStarted)
	assert.Equal(t, "2024-01-01T10:00:00Z", started.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
}

func TestProcessReviewEventsBatch_InvalidBatch_RejectedWholesale(t *testing.T) {
	bus := &mockEventBus{}
	h := handler.NewReviewHandler(bus, newTestLogger())

	body := `[
		{"type": "", "reviewId": "", "authorId": "", "timestamp": "2024-01-01T10:00:00Z", "linesOfCode": -5},
		{"type": "ReviewCompleted", "reviewId": "r2", "authorId": "a2", "timestamp": "2024-01-01T10:00:00Z", "linesOfCode": null}
	]`

	rec := postReviewEvents(t, h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "Event 0:")
	assert.Contains(t, rec.Body.String(), "Event 1:")

	// Ни одно событие не диспатчится при частично невалидном батче
	assert.Empty(t, bus.published)
}

func TestProcessReviewEventsBatch_MalformedBody_ReturnsBadRequest(t *testing.T) {
	bus := &mockEventBus{}
	h := handler.NewReviewHandler(bus, newTestLogger())

	rec := postReviewEvents(t, h, `{"not": "a list"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, bus.published)
}

func TestProcessReviewEventsBatch_PublishFailure_ReturnsInternalError(t *testing.T) {
	bus := &mockEventBus{publishErr: domain.ErrBusClosed}
	h := handler.NewReviewHandler(bus, newTestLogger())

	body := `[{"type": "ReviewStarted", "reviewId": "r1", "authorId": "a1", "timestamp": "2024-01-01T10:00:00Z"}]`

	rec := postReviewEvents(t, h, body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestProcessReviewEventsBatch_EmptyBatch_ReturnsOk(t *testing.T) {
	bus := &mockEventBus{}
	h := handler.NewReviewHandler(bus, newTestLogger())

	rec := postReviewEvents(t, h, `[]`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, bus.published)
}
