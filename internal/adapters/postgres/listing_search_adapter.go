package postgres

import (
	"context"
	"fmt"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/domain"
	"rental-search-service/internal/core/port"
	"strings"

	"github.com/jackc/pgx/v5"
)

const defaultLimit = 100

// Querier is the part of *pgxpool.Pool the adapter needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// listingColumns - every listing column plus the joined location as one JSON object.
// Numerics are read as float8 and enum arrays as text[] so rows decode into plain Go values.
const listingColumns = `
	p.id, p.name, p.description,
	p.price_per_month::float8 AS price_per_month,
	p.security_deposit::float8 AS security_deposit,
	p.application_fee::float8 AS application_fee,
	p.beds, p.baths::float8 AS baths, p.square_feet,
	p.property_type::text AS property_type,
	p.amenities::text[] AS amenities,
	p.highlights::text[] AS highlights,
	p.is_pets_allowed, p.is_parking_included, p.photo_urls,
	p.manager_id, p.location_id, p.posted_date,
	json_build_object(
		'id', l.id,
		'address', l.address,
		'city', l.city,
		'state', l.state,
		'country', l.country,
		'postal_code', l.postal_code,
		'latitude', l.latitude,
		'longitude', l.longitude
	) AS location`

type ListingSearchAdapter struct {
	db Querier
}

func NewListingSearchAdapter(db Querier) (*ListingSearchAdapter, error) {
	if db == nil {
		return nil, fmt.Errorf("postgres querier cannot be nil")
	}
	return &ListingSearchAdapter{db: db}, nil
}

// buildSearchQuery appends ordering and paging; argCount is the number of WHERE arguments.
func buildSearchQuery(whereClause string, argCount int) string {
	var query strings.Builder
	query.WriteString("SELECT")
	query.WriteString(listingColumns)
	query.WriteString("\nFROM listings p\nJOIN locations l ON p.location_id = l.id\n")
	if whereClause != "" {
		query.WriteString(whereClause)
		query.WriteString("\n")
	}
	fmt.Fprintf(&query, "ORDER BY p.posted_date DESC, p.id ASC\nLIMIT $%d OFFSET $%d", argCount+1, argCount+2)
	return query.String()
}

// FindListings compiles the predicates into one parameterized statement and runs it.
func (a *ListingSearchAdapter) FindListings(ctx context.Context, predicates []domain.Predicate, page domain.Page) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ListingSearchAdapter",
		"method":    "FindListings",
		"limit":     page.Limit,
		"offset":    page.Offset,
	})

	whereClause, args, err := applyPredicates(predicates)
	if err != nil {
		return nil, domain.NewRetrievalError(fmt.Errorf("failed to compile predicates: %w", err))
	}

	limit := page.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	query := buildSearchQuery(whereClause, len(args))
	queryArgs := append(args, limit, offset)

	rows, err := a.db.Query(ctx, query, queryArgs...)
	if err != nil {
		repoLogger.Error("Failed to find listings with filters", err, port.Fields{"query": query})
		return nil, domain.NewRetrievalError(fmt.Errorf("failed to find listings with filters: %w", err))
	}

	records, err := collectRecords(rows)
	if err != nil {
		repoLogger.Error("Failed to read listing rows", err, nil)
		return nil, domain.NewRetrievalError(err)
	}

	repoLogger.Debug("Successfully found listings", port.Fields{"count": len(records)})
	return records, nil
}

func collectRecords(rows pgx.Rows) ([]domain.ListingRecord, error) {
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}
	records := make([]domain.ListingRecord, len(maps))
	for i, row := range maps {
		records[i] = domain.RenameKeys(row)
	}
	return records, nil
}

// GetListingDetails loads one listing with its location and leases.
func (a *ListingSearchAdapter) GetListingDetails(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
	query := "SELECT" + listingColumns + "\nFROM listings p\nJOIN locations l ON p.location_id = l.id\nWHERE p.id = $1"

	rows, err := a.db.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %d: %w", listingID, err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrListingNotFound
	}

	leaseRows, err := a.db.Query(ctx, `
		SELECT id, listing_id, tenant_id, start_date, end_date, rent::float8, deposit::float8
		FROM leases
		WHERE listing_id = $1
		ORDER BY start_date ASC, id ASC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leases of listing %d: %w", listingID, err)
	}
	leases, err := pgx.CollectRows(leaseRows, func(row pgx.CollectableRow) (domain.Lease, error) {
		var l domain.Lease
		err := row.Scan(&l.ID, &l.ListingID, &l.TenantID, &l.StartDate, &l.EndDate, &l.Rent, &l.Deposit)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lease: %w", err)
	}
	if leases == nil {
		leases = []domain.Lease{}
	}

	return &domain.ListingDetails{Listing: records[0], Leases: leases}, nil
}
