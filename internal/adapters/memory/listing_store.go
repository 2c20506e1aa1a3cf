package memory

import (
	"context"
	"fmt"
	"math"
	"rental-search-service/internal/core/domain"
	"sort"
	"sync"
	"time"

	"github.com/mmcloughlin/geohash"
)

const (
	defaultLimit = 100
	// cellPrecision - geohash cells of roughly 156x156 km at the equator.
	cellPrecision = 3
	kmPerDegree   = 111.2
)

// ListingStore keeps listings in memory and evaluates predicate descriptors in Go.
// It is safe for concurrent use.
type ListingStore struct {
	mu       sync.RWMutex
	listings map[int64]domain.Listing
	leases   map[int64][]domain.Lease
	cells    map[string]map[int64]struct{}
}

func NewListingStore() *ListingStore {
	return &ListingStore{
		listings: make(map[int64]domain.Listing),
		leases:   make(map[int64][]domain.Lease),
		cells:    make(map[string]map[int64]struct{}),
	}
}

func cellOf(p domain.GeoPoint) string {
	return geohash.EncodeWithPrecision(p.Latitude, p.Longitude, cellPrecision)
}

func pointOf(l domain.Listing) domain.GeoPoint {
	return domain.GeoPoint{Latitude: l.Location.Latitude, Longitude: l.Location.Longitude}
}

// Put inserts or replaces a listing.
func (s *ListingStore) Put(listing domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, ok := s.listings[listing.ID]; ok {
		delete(s.cells[cellOf(pointOf(previous))], previous.ID)
	}
	if listing.LocationID == 0 {
		listing.LocationID = listing.Location.ID
	}
	s.listings[listing.ID] = listing

	cell := cellOf(pointOf(listing))
	if s.cells[cell] == nil {
		s.cells[cell] = make(map[int64]struct{})
	}
	s.cells[cell][listing.ID] = struct{}{}
}

func (s *ListingStore) AddLease(lease domain.Lease) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leases[lease.ListingID] = append(s.leases[lease.ListingID], lease)
}

func (s *ListingStore) FindListings(ctx context.Context, predicates []domain.Predicate, page domain.Page) ([]domain.ListingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewRetrievalError(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Listing
	for _, id := range s.candidates(predicates) {
		listing := s.listings[id]
		ok, err := s.matches(listing, predicates)
		if err != nil {
			return nil, domain.NewRetrievalError(err)
		}
		if ok {
			matched = append(matched, listing)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PostedDate.Equal(matched[j].PostedDate) {
			return matched[i].PostedDate.After(matched[j].PostedDate)
		}
		return matched[i].ID < matched[j].ID
	})

	limit := page.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	records := make([]domain.ListingRecord, 0, end-offset)
	for _, listing := range matched[offset:end] {
		records = append(records, domain.RenameKeys(storageRow(listing)))
	}
	return records, nil
}

// candidates narrows a radius search to the center cell and its neighbours when that ring
// is guaranteed to contain the whole circle; otherwise every listing is a candidate.
func (s *ListingStore) candidates(predicates []domain.Predicate) []int64 {
	for _, p := range predicates {
		radius, ok := p.Value.(domain.GeoRadius)
		if !ok || p.Op != domain.OpWithinRadius {
			continue
		}
		if cells, covered := ringCells(radius); covered {
			var ids []int64
			for _, cell := range cells {
				for id := range s.cells[cell] {
					ids = append(ids, id)
				}
			}
			return ids
		}
	}

	ids := make([]int64, 0, len(s.listings))
	for id := range s.listings {
		ids = append(ids, id)
	}
	return ids
}

func ringCells(radius domain.GeoRadius) ([]string, bool) {
	center := cellOf(radius.Center)
	box := geohash.BoundingBox(center)

	heightKm := (box.MaxLat - box.MinLat) * kmPerDegree
	reachLat := math.Max(math.Abs(box.MinLat), math.Abs(box.MaxLat)) + radius.RadiusKm/kmPerDegree
	if reachLat >= 89 {
		return nil, false
	}
	widthKm := (box.MaxLng - box.MinLng) * kmPerDegree * math.Cos(reachLat*math.Pi/180)
	if heightKm < radius.RadiusKm || widthKm < radius.RadiusKm {
		return nil, false
	}
	return append([]string{center}, geohash.Neighbors(center)...), true
}

func (s *ListingStore) matches(listing domain.Listing, predicates []domain.Predicate) (bool, error) {
	for _, p := range predicates {
		ok, err := s.evaluate(listing, p)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (s *ListingStore) evaluate(listing domain.Listing, p domain.Predicate) (bool, error) {
	switch value := p.Value.(type) {
	case []int64:
		if p.Op != domain.OpIn {
			break
		}
		for _, id := range value {
			if id == listing.ID {
				return true, nil
			}
		}
		return false, nil

	case float64:
		column, ok := numericValue(listing, p.Field)
		if !ok {
			break
		}
		switch p.Op {
		case domain.OpGte:
			return column >= value, nil
		case domain.OpLte:
			return column <= value, nil
		}

	case domain.PropertyType:
		if p.Op == domain.OpEq {
			return listing.PropertyType == value, nil
		}

	case []domain.Amenity:
		if p.Op == domain.OpContainsAll {
			return containsAll(listing.Amenities, value), nil
		}

	case time.Time:
		if p.Op == domain.OpNoLeaseEndingOnOrAfter {
			return domain.AvailableOn(s.leases[listing.ID], value), nil
		}

	case domain.GeoRadius:
		if p.Op == domain.OpWithinRadius {
			return value.Within(pointOf(listing)), nil
		}
	}
	return false, fmt.Errorf("unsupported predicate %s %s (%T)", p.Field, p.Op, p.Value)
}

func numericValue(listing domain.Listing, field domain.Field) (float64, bool) {
	switch field {
	case domain.FieldPrice:
		return listing.PricePerMonth, true
	case domain.FieldBeds:
		return float64(listing.Beds), true
	case domain.FieldBaths:
		return listing.Baths, true
	case domain.FieldArea:
		return float64(listing.SquareFeet), true
	}
	return 0, false
}

func containsAll(have []domain.Amenity, want []domain.Amenity) bool {
	set := make(map[domain.Amenity]struct{}, len(have))
	for _, a := range have {
		set[a] = struct{}{}
	}
	for _, a := range want {
		if _, ok := set[a]; !ok {
			return false
		}
	}
	return true
}

func (s *ListingStore) GetListingDetails(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}

	leases := append([]domain.Lease{}, s.leases[listingID]...)
	sort.Slice(leases, func(i, j int) bool {
		if !leases[i].StartDate.Equal(leases[j].StartDate) {
			return leases[i].StartDate.Before(leases[j].StartDate)
		}
		return leases[i].ID < leases[j].ID
	})
	return &domain.ListingDetails{Listing: domain.RenameKeys(storageRow(listing)), Leases: leases}, nil
}

// storageRow lays a listing out the way the listings/locations tables name their columns.
func storageRow(l domain.Listing) map[string]any {
	return map[string]any{
		"id":                  l.ID,
		"name":                l.Name,
		"description":         l.Description,
		"price_per_month":     l.PricePerMonth,
		"security_deposit":    l.SecurityDeposit,
		"application_fee":     l.ApplicationFee,
		"beds":                l.Beds,
		"baths":               l.Baths,
		"square_feet":         l.SquareFeet,
		"property_type":       string(l.PropertyType),
		"amenities":           stringList(l.Amenities),
		"highlights":          stringList(l.Highlights),
		"is_pets_allowed":     l.IsPetsAllowed,
		"is_parking_included": l.IsParkingIncluded,
		"photo_urls":          stringList(l.PhotoURLs),
		"manager_id":          l.ManagerID,
		"location_id":         l.LocationID,
		"posted_date":         l.PostedDate,
		"location": map[string]any{
			"id":          l.Location.ID,
			"address":     l.Location.Address,
			"city":        l.Location.City,
			"state":       l.Location.State,
			"country":     l.Location.Country,
			"postal_code": l.Location.PostalCode,
			"latitude":    l.Location.Latitude,
			"longitude":   l.Location.Longitude,
		},
	}
}

func stringList[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
