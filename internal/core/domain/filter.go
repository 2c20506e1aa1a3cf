package domain

import "time"

// DefaultSearchRadiusKm - radius around the requested center when the caller does not configure one.
const DefaultSearchRadiusKm = 50.0

// GeoPoint - a WGS84 coordinate.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Range - inclusive numeric bounds, either side may be absent.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) IsEmpty() bool {
	return r.Min == nil && r.Max == nil
}

// Inverted reports min > max when both bounds are present.
func (r Range) Inverted() bool {
	return r.Min != nil && r.Max != nil && *r.Min > *r.Max
}

// Filter - sparse set of search constraints. A nil/empty field does not constrain the search.
type Filter struct {
	FavoriteIDs   []int64
	Price         Range
	BedsMin       *float64
	BathsMin      *float64
	SquareFeet    Range
	PropertyType  *PropertyType
	Amenities     []Amenity
	AvailableFrom *time.Time
	Center        *GeoPoint

	// Location is the free-text place the client searched for. It is resolved to Center
	// on the client side and never becomes a predicate.
	Location string
}

// IsEmpty reports whether the filter imposes no predicate at all.
func (f Filter) IsEmpty() bool {
	return len(f.FavoriteIDs) == 0 &&
		f.Price.IsEmpty() &&
		f.BedsMin == nil &&
		f.BathsMin == nil &&
		f.SquareFeet.IsEmpty() &&
		f.PropertyType == nil &&
		len(f.Amenities) == 0 &&
		f.AvailableFrom == nil &&
		f.Center == nil
}

// Contradictory reports a range filter that no listing can satisfy.
func (f Filter) Contradictory() bool {
	return f.Price.Inverted() || f.SquareFeet.Inverted()
}

// Page - window of the ordered result set.
type Page struct {
	Limit  int
	Offset int
}
