package generations

import "time"

// Status is the outcome of a render attempt.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Generation records one render attempt for a form session. It carries
// metadata only; the résumé content is never stored.
type Generation struct {
	ID         string    `json:"id"`
	FormID     string    `json:"formId"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	SizeBytes  int64     `json:"sizeBytes"`
	Sections   int       `json:"sections"`
	DurationMs float64   `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
