package model

import "time"

// ScrapeResult is the per-company outcome of one scrape run. A failed company
// carries its error message and never aborts the run.
type ScrapeResult struct {
	Company  string `json:"company"`
	Products int    `json:"products"`
	Features int    `json:"features"`
	Error    string `json:"error,omitempty"`
}

// ScrapeSummary is the outcome of a whole scrape run, also cached as the
// last-run status.
type ScrapeSummary struct {
	JobID          string         `json:"jobId"`
	Status         string         `json:"status"`
	ItemsProcessed int            `json:"itemsProcessed"`
	Results        []ScrapeResult `json:"results"`
	StartedAt      time.Time      `json:"startedAt"`
	FinishedAt     time.Time      `json:"finishedAt"`
}
