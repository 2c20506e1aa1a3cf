package domain

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query-string keys understood by NormalizeFilter.
const (
	ParamLocation      = "location"
	ParamPriceMin      = "priceMin"
	ParamPriceMax      = "priceMax"
	ParamBeds          = "beds"
	ParamBaths         = "baths"
	ParamPropertyType  = "propertyType"
	ParamSquareFeetMin = "squareFeetMin"
	ParamSquareFeetMax = "squareFeetMax"
	ParamAmenities     = "amenities"
	ParamAvailableFrom = "availableFrom"
	ParamLatitude      = "latitude"
	ParamLongitude     = "longitude"
	ParamFavoriteIDs   = "favoriteIds"
)

// AnyValue - sentinel meaning "do not constrain on this dimension".
const AnyValue = "any"

// Anomaly - a non-empty parameter value that was dropped during normalization.
type Anomaly struct {
	Field  string
	Value  string
	Reason string
}

type normalizer struct {
	params    url.Values
	anomalies []Anomaly
}

// NormalizeFilter converts raw query parameters into a typed Filter.
// It never fails: every value that cannot be used is dropped and reported as an Anomaly.
func NormalizeFilter(params url.Values) (Filter, []Anomaly) {
	n := &normalizer{params: params}

	var f Filter
	f.Location = strings.TrimSpace(n.first(ParamLocation))
	f.FavoriteIDs = n.ids(ParamFavoriteIDs)
	f.Price = Range{Min: n.number(ParamPriceMin), Max: n.number(ParamPriceMax)}
	f.BedsMin = n.number(ParamBeds)
	f.BathsMin = n.number(ParamBaths)
	f.SquareFeet = Range{Min: n.number(ParamSquareFeetMin), Max: n.number(ParamSquareFeetMax)}
	f.PropertyType = n.propertyType(ParamPropertyType)
	f.Amenities = n.amenities(ParamAmenities)
	f.AvailableFrom = n.date(ParamAvailableFrom)
	f.Center = n.center()

	return f, n.anomalies
}

func (n *normalizer) first(key string) string {
	return n.params.Get(key)
}

// joined merges repeated keys, so ?amenities=WiFi&amenities=Gym equals ?amenities=WiFi,Gym.
func (n *normalizer) joined(key string) string {
	return strings.Join(n.params[key], ",")
}

func (n *normalizer) drop(field, value, reason string) {
	n.anomalies = append(n.anomalies, Anomaly{Field: field, Value: value, Reason: reason})
}

// raw returns the trimmed value, or "" when the value is absent or the "any" sentinel.
func (n *normalizer) raw(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, AnyValue) {
		return ""
	}
	return value
}

func (n *normalizer) number(key string) *float64 {
	value := n.raw(n.first(key))
	if value == "" {
		return nil
	}
	parsed, ok := parseFinite(value)
	if !ok {
		n.drop(key, value, "not a number")
		return nil
	}
	return &parsed
}

func parseFinite(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

func (n *normalizer) propertyType(key string) *PropertyType {
	value := n.raw(n.first(key))
	if value == "" {
		return nil
	}
	pt := PropertyType(value)
	if !pt.Valid() {
		n.drop(key, value, "unknown property type")
		return nil
	}
	return &pt
}

func (n *normalizer) amenities(key string) []Amenity {
	value := n.raw(n.joined(key))
	if value == "" {
		return nil
	}

	var out []Amenity
	seen := make(map[Amenity]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		a := Amenity(part)
		if !a.Valid() {
			n.drop(key, part, "unknown amenity")
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

func (n *normalizer) date(key string) *time.Time {
	value := n.raw(n.first(key))
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		return &day
	}
	n.drop(key, value, "not a calendar date")
	return nil
}

func (n *normalizer) ids(key string) []int64 {
	value := n.raw(n.joined(key))
	if value == "" {
		return nil
	}

	var out []int64
	seen := make(map[int64]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			n.drop(key, part, "not an integer id")
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (n *normalizer) center() *GeoPoint {
	lat := n.number(ParamLatitude)
	lng := n.number(ParamLongitude)

	if lat != nil && (*lat < -90 || *lat > 90) {
		n.drop(ParamLatitude, strconv.FormatFloat(*lat, 'f', -1, 64), "latitude out of range")
		lat = nil
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		n.drop(ParamLongitude, strconv.FormatFloat(*lng, 'f', -1, 64), "longitude out of range")
		lng = nil
	}
	if lat == nil || lng == nil {
		return nil
	}
	return &GeoPoint{Latitude: *lat, Longitude: *lng}
}
