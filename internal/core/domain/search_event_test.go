package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewSearchPerformed(t *testing.T) {
	f := Filter{
		Price:    Range{Min: ptr(100.0), Max: ptr(900.0)},
		Center:   &GeoPoint{Latitude: 21.0285, Longitude: 105.8542},
		Location: "Hanoi",
	}
	preds := BuildPredicates(f, 0)

	event := NewSearchPerformed("trace-1", f, preds, 4, 1500*time.Microsecond)

	assert.NotEqual(t, uuid.Nil, event.EventID)
	assert.Equal(t, "trace-1", event.TraceID)
	assert.Equal(t, []string{"price", "location"}, event.Dimensions)
	assert.Len(t, event.CenterHash, 5)
	assert.Equal(t, "Hanoi", event.Location)
	assert.Equal(t, 4, event.ResultCount)
	assert.Equal(t, int64(1), event.DurationMs)
}

func TestNewSearchPerformed_NoCenter(t *testing.T) {
	event := NewSearchPerformed("", Filter{}, nil, 0, 0)
	assert.Empty(t, event.CenterHash)
	assert.Empty(t, event.Dimensions)
}

func TestBuildDictionaries(t *testing.T) {
	d := BuildDictionaries()
	assert.Len(t, d.PropertyTypes, len(PropertyTypes()))
	assert.Len(t, d.Amenities, len(Amenities()))
	assert.Len(t, d.Highlights, len(Highlights()))
	for _, item := range d.Amenities {
		assert.NotEmpty(t, item.DisplayName, item.SystemName)
	}
}
