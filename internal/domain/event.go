package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Типы входящих событий.
const (
	EventTypeReviewStarted   = "ReviewStarted"
	EventTypeReviewCompleted = "ReviewCompleted"
)

// Event — сообщение внутренней шины событий.
type Event interface {
	Kind() string
}

// ReviewStarted — внутреннее событие начала ревью.
type ReviewStarted struct {
	ReviewID  string
	AuthorID  string
	Timestamp time.Time
}

func (ReviewStarted) Kind() string { return EventTypeReviewStarted }

// ReviewCompleted — внутреннее событие завершения ревью.
// LinesOfCode гарантированно задан: валидация выполняется до диспатча.
type ReviewCompleted struct {
	ReviewID    string
	AuthorID    string
	Timestamp   time.Time
	LinesOfCode int
}

func (ReviewCompleted) Kind() string { return EventTypeReviewCompleted }

// ReviewEvent — внешнее событие из батча на intake.
type ReviewEvent struct {
	Type        string  `json:"type"`
	ReviewID    string  `json:"reviewId"`
	AuthorID    string  `json:"authorId"`
	Timestamp   UTCTime `json:"timestamp"`
	LinesOfCode *int    `json:"linesOfCode"`
}

// UTCTime — время, нормализуемое в UTC на границе системы.
// Временные метки без зоны интерпретируются как UTC, а не отклоняются.
type UTCTime struct {
	time.Time
}

// Форматы без зоны, принимаемые на intake.
var naiveTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON разбирает ISO-8601 метку и приводит ее к UTC.
func (t *UTCTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed.UTC()
		return nil
	}

	for _, layout := range naiveTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("unable to parse timestamp: %q", s)
}

// MarshalJSON сериализует время в UTC в формате RFC3339.
func (t UTCTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}
