package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListingRecord - one search result: listing columns plus a nested "location" object,
// keyed in the external camelCase convention.
type ListingRecord map[string]any

// ID returns the listing id whatever integer type the store produced.
func (r ListingRecord) ID() (int64, bool) {
	switch v := r["id"].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// RenameKeys rewrites snake_case keys to camelCase, recursing into nested objects and arrays.
// Keys without underscores are kept as they are, so renaming twice is a no-op.
func RenameKeys(row map[string]any) ListingRecord {
	// cases.Caser keeps state and must not be shared between goroutines.
	caser := cases.Title(language.English)
	return ListingRecord(renameMap(row, caser))
}

func renameMap(in map[string]any, caser cases.Caser) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[camelCase(key, caser)] = renameValue(value, caser)
	}
	return out
}

func renameValue(value any, caser cases.Caser) any {
	switch v := value.(type) {
	case map[string]any:
		return renameMap(v, caser)
	case ListingRecord:
		return renameMap(v, caser)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = renameValue(item, caser)
		}
		return out
	default:
		return value
	}
}

func camelCase(key string, caser cases.Caser) string {
	if !strings.Contains(key, "_") {
		return key
	}

	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(strings.ToLower(part))
			continue
		}
		b.WriteString(caser.String(part))
	}
	return b.String()
}
