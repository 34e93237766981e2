package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 25
	duration   = 1 * time.Minute

	authorCount = 50
)

type reviewEvent struct {
	Type        string `json:"type"`
	ReviewID    string `json:"reviewId"`
	AuthorID    string `json:"authorId"`
	Timestamp   string `json:"timestamp"`
	LinesOfCode *int   `json:"linesOfCode,omitempty"`
}

func intPtr(v int) *int { return &v }

// Каждый таргет — батч из пары start/complete для случайного автора,
// плюс периодическое чтение метрик.
func newTargeter() vegeta.Targeter {
	counter := 0

	return func(tgt *vegeta.Target) error {
		counter++

		if counter%10 == 0 {
			tgt.Method = "GET"
			if counter%20 == 0 {
				tgt.URL = targetHost + "/api/authors/"
			} else {
				tgt.URL = fmt.Sprintf("%s/api/authors/author-%03d/", targetHost, rand.Intn(authorCount))
			}
			return nil
		}

		authorID := fmt.Sprintf("author-%03d", rand.Intn(authorCount))
		reviewID := fmt.Sprintf("review-%d-%d", counter, rand.Intn(1_000_000))

		startedAt := time.Now().UTC().Add(-time.Duration(rand.Intn(7200)) * time.Second)
		completedAt := startedAt.Add(time.Duration(600+rand.Intn(7200)) * time.Second)

		batch := []reviewEvent{
			{
				Type:      "ReviewStarted",
				ReviewID:  reviewID,
				AuthorID:  authorID,
				Timestamp: startedAt.Format(time.RFC3339),
			},
			{
				Type:        "ReviewCompleted",
				ReviewID:    reviewID,
				AuthorID:    authorID,
				Timestamp:   completedAt.Format(time.RFC3339),
				LinesOfCode: intPtr(10 + rand.Intn(990)),
			},
		}

		body, err := json.Marshal(batch)
		if err != nil {
			return err
		}

		tgt.Method = "POST"
		tgt.URL = targetHost + "/api/reviews/"
		tgt.Body = body
		tgt.Header = map[string][]string{"Content-Type": {"application/json"}}
		return nil
	}
}

func main() {
	log.Printf("Attacking %s: %d rps for %s", targetHost, rps, duration)

	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()

	var metrics vegeta.Metrics
	for res := range attacker.Attack(newTargeter(), rate, duration, "review-metrics") {
		metrics.Add(res)
	}
	metrics.Close()

	log.Printf("Requests: %d", metrics.Requests)
	log.Printf("Success rate: %.2f%%", metrics.Success*100)
	log.Printf("Latency p50: %s, p95: %s, p99: %s",
		metrics.Latencies.P50, metrics.Latencies.P95, metrics.Latencies.P99)
	log.Printf("Status codes: %v", metrics.StatusCodes)

	if len(metrics.Errors) > 0 {
		log.Printf("Errors: %v", metrics.Errors)
	}
}
