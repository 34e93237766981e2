package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"review-metrics-service/internal/domain"
	"review-metrics-service/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMetricsUseCase struct {
	mock.Mock
}

func (m *mockMetricsUseCase) GetAuthorMetrics(ctx context.Context, authorID string) (*domain.AuthorMetrics, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorMetrics), args.Error(1)
}

func (m *mockMetricsUseCase) ListAuthorMetrics(ctx context.Context) ([]*domain.AuthorMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuthorMetrics), args.Error(1)
}

func getAuthorMetrics(t *testing.T, h *handler.AuthorHandler, authorID string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/authors/"+authorID+"/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("authorId")
	c.SetParamValues(authorID)

	require.NoError(t, h.GetAuthorMetrics(c))
	return rec
}

func TestGetAuthorMetrics_Success(t *testing.T) {
	uc := &mockMetricsUseCase{}
	h := handler.NewAuthorHandler(uc, newTestLogger())

	avg := 7200.0
	uc.On("GetAuthorMetrics", mock.Anything, "a1").Return(&domain.AuthorMetrics{
		AuthorID:                     "a1",
		CompletedReviews:             1,
		TotalReviews:                 2,
		TotalLinesOfCodeReviewed:     150,
		LinesOfCodeReviewedPerHour:   75,
		AverageReviewDurationSeconds: &avg,
	}, nil)

	rec := getAuthorMetrics(t, h, "a1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"authorId": "a1",
		"completedReviews": 1,
		"totalReviews": 2,
		"totalLinesOfCodeReviewed": 150,
		"linesOfCodeReviewedPerHour": 75,
		"averageReviewDuration": 7200
	}`, rec.Body.String())
}

func TestGetAuthorMetrics_NoCompletedReviews_AverageIsNull(t *testing.T) {
	uc := &mockMetricsUseCase{}
	h := handler.NewAuthorHandler(uc, newTestLogger())

	uc.On("GetAuthorMetrics", mock.Anything, "a1").Return(&domain.AuthorMetrics{
		AuthorID:     "a1",
		TotalReviews: 1,
	}, nil)

	rec := getAuthorMetrics(t, h, "a1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"averageReviewDuration":null`)
}

func TestGetAuthorMetrics_NotFound(t *testing.T) {
	uc := &mockMetricsUseCase{}
	h := handler.NewAuthorHandler(uc, newTestLogger())

	uc.On("GetAuthorMetrics", mock.Anything, "ghost").Return(nil, domain.ErrAuthorNotFound)

	rec := getAuthorMetrics(t, h, "ghost")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestListAllAuthorsMetrics_Success(t *testing.T) {
	uc := &mockMetricsUseCase{}
	h := handler.NewAuthorHandler(uc, newTestLogger())

	uc.On("ListAuthorMetrics", mock.Anything).Return([]*domain.AuthorMetrics{
		{AuthorID: "a1", CompletedReviews: 1, TotalReviews: 1, TotalLinesOfCodeReviewed: 100},
		{AuthorID: "a2"},
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/authors/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListAllAuthorsMetrics(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authorId":"a1"`)
	assert.Contains(t, rec.Body.String(), `"authorId":"a2"`)
}

func TestListAllAuthorsMetrics_Empty_ReturnsEmptyList(t *testing.T) {
	uc := &mockMetricsUseCase{}
	h := handler.NewAuthorHandler(uc, newTestLogger())

	uc.On("ListAuthorMetrics", mock.Anything).Return([]*domain.AuthorMetrics{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/authors/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListAllAuthorsMetrics(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
