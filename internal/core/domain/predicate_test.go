package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBuildPredicates_Empty(t *testing.T) {
	assert.Empty(t, BuildPredicates(Filter{}, 0))
}

func TestBuildPredicates_FixedOrder(t *testing.T) {
	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	center := GeoPoint{Latitude: 21.0285, Longitude: 105.8542}
	f := Filter{
		FavoriteIDs:   []int64{1, 2},
		Price:         Range{Min: ptr(100.0), Max: ptr(900.0)},
		BedsMin:       ptr(2.0),
		BathsMin:      ptr(1.0),
		SquareFeet:    Range{Min: ptr(300.0), Max: ptr(800.0)},
		PropertyType:  ptr(PropertyTypeApartment),
		Amenities:     []Amenity{AmenityWiFi},
		AvailableFrom: &date,
		Center:        &center,
	}

	preds := BuildPredicates(f, 0)
	want := []Predicate{
		{Field: FieldID, Op: OpIn, Value: []int64{1, 2}},
		{Field: FieldPrice, Op: OpGte, Value: 100.0},
		{Field: FieldPrice, Op: OpLte, Value: 900.0},
		{Field: FieldBeds, Op: OpGte, Value: 2.0},
		{Field: FieldBaths, Op: OpGte, Value: 1.0},
		{Field: FieldArea, Op: OpGte, Value: 300.0},
		{Field: FieldArea, Op: OpLte, Value: 800.0},
		{Field: FieldPropertyType, Op: OpEq, Value: PropertyTypeApartment},
		{Field: FieldAmenities, Op: OpContainsAll, Value: []Amenity{AmenityWiFi}},
		{Field: FieldLease, Op: OpNoLeaseEndingOnOrAfter, Value: date},
		{Field: FieldLocation, Op: OpWithinRadius, Value: GeoRadius{Center: center, RadiusKm: DefaultSearchRadiusKm}},
	}
	assert.Equal(t, want, preds)
}

func TestBuildPredicates_CopiesSlices(t *testing.T) {
	f := Filter{FavoriteIDs: []int64{1}}
	preds := BuildPredicates(f, 0)
	f.FavoriteIDs[0] = 99
	assert.Equal(t, []int64{1}, preds[0].Value)
}

func TestBuildPredicates_CustomRadius(t *testing.T) {
	preds := BuildPredicates(Filter{Center: &GeoPoint{}}, 10)
	require.Len(t, preds, 1)
	assert.Equal(t, 10.0, preds[0].Value.(GeoRadius).RadiusKm)
}

func TestFilter_Contradictory(t *testing.T) {
	assert.False(t, Filter{}.Contradictory())
	assert.False(t, Filter{Price: Range{Min: ptr(500.0), Max: ptr(500.0)}}.Contradictory())
	assert.True(t, Filter{Price: Range{Min: ptr(900.0), Max: ptr(100.0)}}.Contradictory())
	assert.True(t, Filter{SquareFeet: Range{Min: ptr(900.0), Max: ptr(100.0)}}.Contradictory())
	assert.False(t, Filter{Price: Range{Min: ptr(900.0)}}.Contradictory())
}

func TestAvailableOn(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	leases := []Lease{
		{EndDate: day("2025-12-31")},
		{EndDate: day("2026-06-30")},
	}

	assert.True(t, AvailableOn(nil, day("2026-01-01")))
	assert.False(t, AvailableOn(leases, day("2026-06-30")), "a lease ending on the date blocks it")
	assert.False(t, AvailableOn(leases, day("2026-03-01")))
	assert.True(t, AvailableOn(leases, day("2026-07-01")))
}

func TestGeoRadiusWithin(t *testing.T) {
	hanoi := GeoPoint{Latitude: 21.0285, Longitude: 105.8542}
	haiphong := GeoPoint{Latitude: 20.8449, Longitude: 106.6881}
	distance := DistanceKm(hanoi, haiphong)

	assert.InDelta(t, 89.5, distance, 2)
	assert.InDelta(t, 0, DistanceKm(hanoi, hanoi), 1e-9)
	assert.False(t, GeoRadius{Center: hanoi, RadiusKm: 50}.Within(haiphong))
	assert.True(t, GeoRadius{Center: hanoi, RadiusKm: distance}.Within(haiphong), "boundary is inclusive")
}
