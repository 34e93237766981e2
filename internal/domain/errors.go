package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Handler errors
	ErrAuthorNotFound         = errors.New("author not found")
	ErrReviewNotFound         = errors.New("review not found")
	ErrReviewAlreadyCompleted = errors.New("review already completed")

	// Dispatch errors
	ErrInvalidEventType = errors.New("invalid review event type")

	// Bus errors
	ErrBusClosed = errors.New("event bus is closed")
)

// HTTPError для тела ответа об ошибке
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrAuthorNotFound:         {Code: "NOT_FOUND", Message: "author not found"},
	ErrReviewNotFound:         {Code: "NOT_FOUND", Message: "review not found for this author"},
	ErrReviewAlreadyCompleted: {Code: "ALREADY_COMPLETED", Message: "review has already been completed"},
	ErrInvalidEventType:       {Code: "INVALID_EVENT_TYPE", Message: "invalid review event type"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
