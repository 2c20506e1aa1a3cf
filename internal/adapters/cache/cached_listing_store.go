package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/domain"
	"rental-search-service/internal/core/port"
	"time"
)

const keyPrefix = "rental-search:listings:v1:"

// Store is the key/value backend of the search cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedListingStore keeps search pages for ttl. Cache failures are logged and the
// wrapped store answers instead. Listing details are never cached because leases change.
type CachedListingStore struct {
	next  port.ListingStorePort
	cache Store
	ttl   time.Duration
}

func NewCachedListingStore(next port.ListingStorePort, cache Store, ttl time.Duration) (*CachedListingStore, error) {
	if next == nil || cache == nil {
		return nil, fmt.Errorf("cached listing store needs a store and a cache")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	return &CachedListingStore{next: next, cache: cache, ttl: ttl}, nil
}

func (s *CachedListingStore) FindListings(ctx context.Context, predicates []domain.Predicate, page domain.Page) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "CachedListingStore"})

	key, err := searchKey(predicates, page)
	if err != nil {
		logger.Warn("Search is not cacheable", port.Fields{"error": err.Error()})
		return s.next.FindListings(ctx, predicates, page)
	}

	cached, found, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("Cache read failed", port.Fields{"error": err.Error()})
	case found:
		if records, err := decodeRecords(cached); err == nil {
			logger.Debug("Cache hit", port.Fields{"count": len(records)})
			return records, nil
		}
		logger.Warn("Discarding undecodable cache entry", nil)
	}

	records, err := s.next.FindListings(ctx, predicates, page)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(records); err == nil {
		if err := s.cache.Set(ctx, key, encoded, s.ttl); err != nil {
			logger.Warn("Cache write failed", port.Fields{"error": err.Error()})
		}
	}
	return records, nil
}

func (s *CachedListingStore) GetListingDetails(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
	return s.next.GetListingDetails(ctx, listingID)
}

// searchKey hashes the predicates and page; equal searches share a key.
func searchKey(predicates []domain.Predicate, page domain.Page) (string, error) {
	payload, err := json.Marshal(struct {
		Predicates []domain.Predicate
		Page       domain.Page
	}{predicates, page})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// decodeRecords keeps integers as int64 so ids above 2^53 survive a cache round trip.
// Timestamps come back as their RFC 3339 strings, which encode to the same JSON.
func decodeRecords(data []byte) ([]domain.ListingRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	records := make([]domain.ListingRecord, len(raw))
	for i, row := range raw {
		records[i] = domain.ListingRecord(normalizeNumbers(row).(map[string]any))
	}
	return records, nil
}

func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
		return v
	}
	return value
}
