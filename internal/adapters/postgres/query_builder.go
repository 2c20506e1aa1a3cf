package postgres

import (
	"fmt"
	"rental-search-service/internal/core/domain"
	"strings"
	"time"
)

// numericColumns maps range/minimum dimensions to listing columns.
var numericColumns = map[domain.Field]string{
	domain.FieldPrice: "p.price_per_month",
	domain.FieldBeds:  "p.beds",
	domain.FieldBaths: "p.baths",
	domain.FieldArea:  "p.square_feet",
}

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

// placeholder binds arg and returns its "$n" reference.
func (qb *queryBuilder) placeholder(arg interface{}) string {
	ref := fmt.Sprintf("$%d", qb.argId)
	qb.args = append(qb.args, arg)
	qb.argId++
	return ref
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.placeholder(arg)))
}

// apply lowers one descriptor to SQL. The predicate value is never written into the SQL text.
func (qb *queryBuilder) apply(p domain.Predicate) error {
	switch p.Op {
	case domain.OpIn:
		ids, ok := p.Value.([]int64)
		if !ok || p.Field != domain.FieldID {
			return unsupported(p)
		}
		qb.addCondition("%s = ANY(%s)", "p.id", ids)

	case domain.OpGte, domain.OpLte:
		column, known := numericColumns[p.Field]
		value, ok := p.Value.(float64)
		if !known || !ok {
			return unsupported(p)
		}
		if p.Op == domain.OpGte {
			qb.addCondition("%s >= %s", column, value)
		} else {
			qb.addCondition("%s <= %s", column, value)
		}

	case domain.OpEq:
		pt, ok := p.Value.(domain.PropertyType)
		if !ok || p.Field != domain.FieldPropertyType {
			return unsupported(p)
		}
		qb.addCondition(`%s = %s::property_type`, "p.property_type", string(pt))

	case domain.OpContainsAll:
		requested, ok := p.Value.([]domain.Amenity)
		if !ok || p.Field != domain.FieldAmenities {
			return unsupported(p)
		}
		values := make([]string, len(requested))
		for i, a := range requested {
			values[i] = string(a)
		}
		// @> is containment: extra amenities on the listing still match
		qb.addCondition("%s @> %s::amenity[]", "p.amenities", values)

	case domain.OpNoLeaseEndingOnOrAfter:
		date, ok := p.Value.(time.Time)
		if !ok || p.Field != domain.FieldLease {
			return unsupported(p)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM leases le WHERE le.listing_id = p.id AND le.end_date >= %s)",
			qb.placeholder(date),
		))

	case domain.OpWithinRadius:
		radius, ok := p.Value.(domain.GeoRadius)
		if !ok || p.Field != domain.FieldLocation {
			return unsupported(p)
		}
		// geography distances are geodesic metres
		lng := qb.placeholder(radius.Center.Longitude)
		lat := qb.placeholder(radius.Center.Latitude)
		meters := qb.placeholder(radius.RadiusKm * 1000)
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"ST_DWithin(ST_SetSRID(ST_MakePoint(l.longitude, l.latitude), 4326)::geography, "+
				"ST_SetSRID(ST_MakePoint(%s, %s), 4326)::geography, %s)",
			lng, lat, meters,
		))

	default:
		return unsupported(p)
	}
	return nil
}

func unsupported(p domain.Predicate) error {
	return fmt.Errorf("unsupported predicate %s %s (%T)", p.Field, p.Op, p.Value)
}

// build returns the WHERE clause ("" when unconstrained) and its arguments.
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyPredicates compiles the AND of every predicate.
func applyPredicates(predicates []domain.Predicate) (string, []interface{}, error) {
	qb := newQueryBuilder()
	for _, p := range predicates {
		if err := qb.apply(p); err != nil {
			return "", nil, err
		}
	}
	whereClause, args := qb.build()
	return whereClause, args, nil
}
