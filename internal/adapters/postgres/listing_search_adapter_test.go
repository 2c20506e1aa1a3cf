package postgres

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"rental-search-service/internal/core/domain"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows serves fixed rows through the pgx.Rows interface.
type fakeRows struct {
	columns []string
	values  [][]any
	pos     int
	err     error
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.columns))
	for i, name := range r.columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.values[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if scanner, ok := dest[0].(pgx.RowScanner); ok {
			return scanner.ScanRow(r)
		}
	}
	row := r.values[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

type queryCall struct {
	sql  string
	args []any
}

type fakeQuerier struct {
	calls   []queryCall
	results []*fakeRows
	err     error
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, queryCall{sql: sql, args: args})
	if q.err != nil {
		return nil, q.err
	}
	if len(q.results) == 0 {
		return &fakeRows{}, nil
	}
	rows := q.results[0]
	q.results = q.results[1:]
	return rows, nil
}

func listingRows() *fakeRows {
	return &fakeRows{
		columns: []string{"id", "price_per_month", "property_type", "location"},
		values: [][]any{
			{int64(7), 850.0, "APARTMENT", map[string]any{"id": float64(3), "postal_code": "700000"}},
			{int64(4), 400.0, "ROOM", map[string]any{"id": float64(2), "postal_code": "100000"}},
		},
	}
}

func TestNewListingSearchAdapter_NilQuerier(t *testing.T) {
	_, err := NewListingSearchAdapter(nil)
	assert.Error(t, err)
}

func TestFindListings_BindsPagingAfterFilterArgs(t *testing.T) {
	db := &fakeQuerier{results: []*fakeRows{listingRows()}}
	adapter, err := NewListingSearchAdapter(db)
	require.NoError(t, err)

	preds := []domain.Predicate{{Field: domain.FieldBeds, Op: domain.OpGte, Value: 2.0}}
	records, err := adapter.FindListings(context.Background(), preds, domain.Page{Limit: 20, Offset: 40})
	require.NoError(t, err)

	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "WHERE p.beds >= $1")
	assert.Contains(t, db.calls[0].sql, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{2.0, 20, 40}, db.calls[0].args)

	require.Len(t, records, 2)
	assert.Equal(t, 850.0, records[0]["pricePerMonth"])
	assert.Equal(t, "APARTMENT", records[0]["propertyType"])
	location := records[0]["location"].(map[string]any)
	assert.Equal(t, "700000", location["postalCode"])
}

func TestFindListings_DefaultPaging(t *testing.T) {
	db := &fakeQuerier{}
	adapter, err := NewListingSearchAdapter(db)
	require.NoError(t, err)

	records, err := adapter.FindListings(context.Background(), nil, domain.Page{Offset: -5})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)

	require.Len(t, db.calls, 1)
	assert.NotContains(t, db.calls[0].sql, "WHERE")
	assert.Equal(t, []any{defaultLimit, 0}, db.calls[0].args)
}

func TestFindListings_QueryFailureIsRetrievalError(t *testing.T) {
	db := &fakeQuerier{err: errors.New(`relation "listings" does not exist`)}
	adapter, err := NewListingSearchAdapter(db)
	require.NoError(t, err)

	_, err = adapter.FindListings(context.Background(), nil, domain.Page{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRetrievalFailed)

	var retrievalErr *domain.RetrievalError
	require.ErrorAs(t, err, &retrievalErr)
	assert.Contains(t, retrievalErr.Cause(), `relation "listings" does not exist`)
}

func TestFindListings_RowErrorIsRetrievalError(t *testing.T) {
	rows := listingRows()
	rows.err = errors.New("connection reset")
	adapter, err := NewListingSearchAdapter(&fakeQuerier{results: []*fakeRows{rows}})
	require.NoError(t, err)

	_, err = adapter.FindListings(context.Background(), nil, domain.Page{})
	assert.ErrorIs(t, err, domain.ErrRetrievalFailed)
	assert.True(t, rows.closed)
}

func TestFindListings_UnsupportedPredicateNeverQueries(t *testing.T) {
	db := &fakeQuerier{}
	adapter, err := NewListingSearchAdapter(db)
	require.NoError(t, err)

	_, err = adapter.FindListings(context.Background(), []domain.Predicate{
		{Field: domain.FieldLocation, Op: domain.OpEq, Value: "Hanoi"},
	}, domain.Page{})
	assert.ErrorIs(t, err, domain.ErrRetrievalFailed)
	assert.Empty(t, db.calls)
}

func TestGetListingDetails(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	leases := &fakeRows{
		columns: []string{"id", "listing_id", "tenant_id", "start_date", "end_date", "rent", "deposit"},
		values:  [][]any{{int64(1), int64(7), "tenant-1", start, end, 850.0, 850.0}},
	}
	db := &fakeQuerier{results: []*fakeRows{listingRows(), leases}}
	adapter, err := NewListingSearchAdapter(db)
	require.NoError(t, err)

	details, err := adapter.GetListingDetails(context.Background(), 7)
	require.NoError(t, err)

	id, ok := details.Listing.ID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	require.Len(t, details.Leases, 1)
	assert.Equal(t, domain.Lease{ID: 1, ListingID: 7, TenantID: "tenant-1", StartDate: start, EndDate: end, Rent: 850, Deposit: 850}, details.Leases[0])

	require.Len(t, db.calls, 2)
	assert.Equal(t, []any{int64(7)}, db.calls[0].args)
	assert.Contains(t, db.calls[0].sql, "WHERE p.id = $1")
}

func TestGetListingDetails_NotFound(t *testing.T) {
	db := &fakeQuerier{}
	adapter, err := NewListingSearchAdapter(db)
	require.NoError(t, err)

	_, err = adapter.GetListingDetails(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.Len(t, db.calls, 1, "leases are not read for a missing listing")
}
