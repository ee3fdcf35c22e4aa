// internal/core/domain/filter.go
package domain

import "strings"

// FilterParams holds the visible-subset criteria. Empty fields match all
// records for their predicate.
type FilterParams struct {
	SearchText string `json:"search_text"`
	Warehouse  string `json:"warehouse"`
	Grouping   string `json:"grouping"`
}

// Matches reports whether the record satisfies all three predicates: a
// case-insensitive substring match of the search text against the material
// name or code, and exact matches on warehouse and grouping.
func (p FilterParams) Matches(r *ItemRecord) bool {
	if p.SearchText != "" {
		needle := strings.ToLower(p.SearchText)
		if !strings.Contains(strings.ToLower(r.MaterialName), needle) &&
			!strings.Contains(strings.ToLower(r.MaterialCode), needle) {
			return false
		}
	}
	if p.Warehouse != "" && p.Warehouse != r.WarehouseName {
		return false
	}
	if p.Grouping != "" && p.Grouping != r.MaterialGrouping {
		return false
	}
	return true
}

// FilterRecords returns the subset of records matching the criteria, in the
// original order. Pure function of its inputs; empty criteria yield every
// record.
func FilterRecords(records []ItemRecord, params FilterParams) []ItemRecord {
	matched := make([]ItemRecord, 0, len(records))
	for i := range records {
		if params.Matches(&records[i]) {
			matched = append(matched, records[i].Clone())
		}
	}
	return matched
}
