package validation

import (
	"fmt"
	"sort"
	"strings"

	"review-metrics-service/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Правила валидации одного события ревью.
// LinesOfCode обязателен и строго положителен только для ReviewCompleted.
func validateEvent(e domain.ReviewEvent) error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Type,
			validation.Required.Error("Type is required and cannot be null or empty"),
			validation.In(domain.EventTypeReviewStarted, domain.EventTypeReviewCompleted).
				Error("Type must be ReviewStarted or ReviewCompleted"),
		),
		validation.Field(&e.ReviewID,
			validation.Required.Error("ReviewId is required and cannot be null or empty"),
		),
		validation.Field(&e.AuthorID,
			validation.Required.Error("AuthorId is required and cannot be null or empty"),
		),
		validation.Field(&e.LinesOfCode,
			validation.When(e.Type == domain.EventTypeReviewCompleted,
				validation.NotNil.Error("LinesOfCode is required for ReviewCompleted events"),
				validation.Min(1).Error("LinesOfCode must be positive for ReviewCompleted events"),
			),
		),
	)
}

// BatchError — агрегированная ошибка валидации батча.
// Каждое нарушение помечено позицией события в батче.
type BatchError struct {
	Violations []string
}

func (e *BatchError) Error() string {
	return "Validation failed: " + strings.Join(e.Violations, "; ")
}

// ValidateBatch проверяет каждое событие батча независимо.
// Если хотя бы одно событие невалидно, отклоняется весь батч:
// возвращается BatchError со всеми нарушениями в порядке позиций.
func ValidateBatch(events []domain.ReviewEvent) error {
	var violations []string

	for i, event := range events {
		err := validateEvent(event)
		if err == nil {
			continue
		}

		if fieldErrs, ok := err.(validation.Errors); ok {
			// Сортируем по имени поля для детерминированного вывода
			fields := make([]string, 0, len(fieldErrs))
			for field := range fieldErrs {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				violations = append(violations, fmt.Sprintf("Event %d: %s", i, fieldErrs[field].Error()))
			}
			continue
		}

		violations = append(violations, fmt.Sprintf("Event %d: %s", i, err.Error()))
	}

	if len(violations) > 0 {
		return &BatchError{Violations: violations}
	}
	return nil
}
