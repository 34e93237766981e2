package handler

import (
	"net/http"

	"review-metrics-service/internal/domain"
)

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{
			Code:    code,
			Message: message,
		},
	}
}

func toAPIErrorResponse(httpErr domain.HTTPError) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: httpErr,
	}
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Not Found errors (404)
	case domain.ErrAuthorNotFound, domain.ErrReviewNotFound:
		return http.StatusNotFound

	// Conflict errors (409)
	case domain.ErrReviewAlreadyCompleted:
		return http.StatusConflict

	// Bad Request errors (400)
	case domain.ErrInvalidEventType:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
