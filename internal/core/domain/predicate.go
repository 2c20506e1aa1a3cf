package domain

import "time"

// Field - listing dimension a predicate constrains.
type Field string

const (
	FieldID           Field = "id"
	FieldPrice        Field = "price"
	FieldBeds         Field = "beds"
	FieldBaths        Field = "baths"
	FieldArea         Field = "area"
	FieldPropertyType Field = "property_type"
	FieldAmenities    Field = "amenities"
	FieldLease        Field = "lease"
	FieldLocation     Field = "location"
)

// Operator - comparison applied to a Field.
type Operator string

const (
	OpIn                     Operator = "in"
	OpGte                    Operator = "gte"
	OpLte                    Operator = "lte"
	OpEq                     Operator = "eq"
	OpContainsAll            Operator = "contains_all"
	OpNoLeaseEndingOnOrAfter Operator = "no_lease_ending_on_or_after"
	OpWithinRadius           Operator = "within_radius"
)

// GeoRadius - value of a within_radius predicate.
type GeoRadius struct {
	Center   GeoPoint
	RadiusKm float64
}

// Predicate is a storage-independent filter condition. Value holds:
//
//	OpIn                     []int64
//	OpGte, OpLte             float64
//	OpEq                     PropertyType
//	OpContainsAll            []Amenity
//	OpNoLeaseEndingOnOrAfter time.Time
//	OpWithinRadius           GeoRadius
type Predicate struct {
	Field Field
	Op    Operator
	Value any
}

// BuildPredicates lists one predicate per constrained dimension, in a stable order.
// All predicates are meant to be combined with AND.
func BuildPredicates(f Filter, radiusKm float64) []Predicate {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}

	preds := make([]Predicate, 0, 11)
	add := func(field Field, op Operator, value any) {
		preds = append(preds, Predicate{Field: field, Op: op, Value: value})
	}
	addRange := func(field Field, r Range) {
		if r.Min != nil {
			add(field, OpGte, *r.Min)
		}
		if r.Max != nil {
			add(field, OpLte, *r.Max)
		}
	}

	if len(f.FavoriteIDs) > 0 {
		add(FieldID, OpIn, append([]int64(nil), f.FavoriteIDs...))
	}
	addRange(FieldPrice, f.Price)
	if f.BedsMin != nil {
		add(FieldBeds, OpGte, *f.BedsMin)
	}
	if f.BathsMin != nil {
		add(FieldBaths, OpGte, *f.BathsMin)
	}
	addRange(FieldArea, f.SquareFeet)
	if f.PropertyType != nil {
		add(FieldPropertyType, OpEq, *f.PropertyType)
	}
	if len(f.Amenities) > 0 {
		add(FieldAmenities, OpContainsAll, append([]Amenity(nil), f.Amenities...))
	}
	if f.AvailableFrom != nil {
		add(FieldLease, OpNoLeaseEndingOnOrAfter, *f.AvailableFrom)
	}
	if f.Center != nil {
		add(FieldLocation, OpWithinRadius, GeoRadius{Center: *f.Center, RadiusKm: radiusKm})
	}

	return preds
}

// AvailableOn reports whether none of the leases is still running on date.
func AvailableOn(leases []Lease, date time.Time) bool {
	for _, lease := range leases {
		if !lease.EndDate.Before(date) {
			return false
		}
	}
	return true
}
