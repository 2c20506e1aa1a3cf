package rabbitmq

import (
	"time"

	"github.com/google/uuid"
)

// SearchPerformedEventDTO is the body of a ListingSearchPerformedEvent/1.0.0 message.
type SearchPerformedEventDTO struct {
	EventID     uuid.UUID `json:"event_id"`
	TraceID     string    `json:"trace_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Dimensions  []string  `json:"dimensions"`
	CenterHash  string    `json:"center_hash,omitempty"`
	Location    string    `json:"location,omitempty"`
	ResultCount int       `json:"result_count"`
	DurationMs  int64     `json:"duration_ms"`
}
