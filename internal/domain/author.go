package domain

import "time"

// Author представляет автора ревью и его леджер (набор ревью).
// Агрегатные метрики кэшируются в полях и пересчитываются целиком
// при каждой мутации леджера.
type Author struct {
	ID                           string
	Reviews                      []*Review
	TotalLinesOfCodeReviewed     float64
	LinesOfCodeReviewedPerHour   float64
	AverageReviewDurationSeconds *float64
}

// Review представляет одно ревью внутри леджера автора.
// ID уникален в рамках одного автора.
type Review struct {
	ID          string
	StartedAt   time.Time
	CompletedAt *time.Time
	LinesOfCode *int
}

// Completed сообщает, завершено ли ревью.
func (r *Review) Completed() bool {
	return r.CompletedAt != nil
}

// FindReview возвращает ревью по ID или nil, если его нет в леджере.
func (a *Author) FindReview(reviewID string) *Review {
	for _, r := range a.Reviews {
		if r.ID == reviewID {
			return r
		}
	}
	return nil
}

// CompletedReviews возвращает количество завершенных ревью.
// Счетчик выводится из леджера при чтении, не хранится.
func (a *Author) CompletedReviews() int {
	count := 0
	for _, r := range a.Reviews {
		if r.Completed() {
			count++
		}
	}
	return count
}

// TotalReviews возвращает общее количество ревью в леджере.
func (a *Author) TotalReviews() int {
	return len(a.Reviews)
}

// UpdateMetrics пересчитывает агрегатные метрики автора по полному
// набору завершенных ревью. Пересчет детерминирован и идемпотентен:
// повторный вызов на неизменном леджере дает тот же результат.
//
// Правила:
//   - учитываются только завершенные ревью;
//   - отсутствующий LinesOfCode считается нулем;
//   - если завершенных ревью нет: throughput = 0, средняя длительность
//     не определена (nil, а не ноль);
//   - при суммарной длительности <= 0 throughput = 0 (отрицательная
//     длительность не обрабатывается особо и попадает в среднее как есть).
func (a *Author) UpdateMetrics() {
	var totalLines float64
	var totalDurationSeconds float64
	completed := 0

	for _, r := range a.Reviews {
		if !r.Completed() {
			continue
		}
		completed++
		if r.LinesOfCode != nil {
			totalLines += float64(*r.LinesOfCode)
		}
		totalDurationSeconds += r.CompletedAt.Sub(r.StartedAt).Seconds()
	}

	a.TotalLinesOfCodeReviewed = totalLines

	if completed == 0 {
		a.LinesOfCodeReviewedPerHour = 0
		a.AverageReviewDurationSeconds = nil
		return
	}

	if totalDurationSeconds > 0 {
		a.LinesOfCodeReviewedPerHour = totalLines / (totalDurationSeconds / 3600)
	} else {
		a.LinesOfCodeReviewedPerHour = 0
	}

	avg := totalDurationSeconds / float64(completed)
	a.AverageReviewDurationSeconds = &avg
}
