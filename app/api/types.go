package api

import (
	"time"

	"github.com/lysyi3m/rss-digest/app/digest"
)

type Handler struct {
	outputDir   string
	report      *digest.Report
	generatedAt time.Time
	version     string
}

type sourceStatus struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Fetched int    `json:"fetched"`
	Kept    int    `json:"kept"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string         `json:"status"`
	Version     string         `json:"version"`
	GeneratedAt string         `json:"generated_at"`
	Articles    int            `json:"articles"`
	Sources     []sourceStatus `json:"sources"`
}
