package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

// centerHashPrecision - 5 characters is a cell of roughly 5x5 km.
const centerHashPrecision = 5

// SearchPerformed - emitted after every successful search.
type SearchPerformed struct {
	EventID     uuid.UUID
	TraceID     string
	OccurredAt  time.Time
	Dimensions  []string
	CenterHash  string
	Location    string
	ResultCount int
	DurationMs  int64
}

// NewSearchPerformed summarizes a search without copying user-supplied values other
// than the coarse geohash of the center.
func NewSearchPerformed(traceID string, f Filter, predicates []Predicate, resultCount int, took time.Duration) SearchPerformed {
	dims := make([]string, 0, len(predicates))
	seen := make(map[Field]struct{}, len(predicates))
	for _, p := range predicates {
		if _, ok := seen[p.Field]; ok {
			continue
		}
		seen[p.Field] = struct{}{}
		dims = append(dims, string(p.Field))
	}

	event := SearchPerformed{
		EventID:     uuid.New(),
		TraceID:     traceID,
		OccurredAt:  time.Now().UTC(),
		Dimensions:  dims,
		Location:    f.Location,
		ResultCount: resultCount,
		DurationMs:  took.Milliseconds(),
	}
	if f.Center != nil {
		event.CenterHash = geohash.EncodeWithPrecision(f.Center.Latitude, f.Center.Longitude, centerHashPrecision)
	}
	return event
}
