package core

import (
	"sort"

	"recordbook-web/internal/dates"
)

// SalesFilter selects records by exact field match. Empty fields are no-ops;
// non-empty fields are ANDed together.
type SalesFilter struct {
	Variant string
	Size    string
}

// FilterSales returns the records whose variant/size equal every non-empty
// filter field. The input slice is never mutated.
func FilterSales(records []SalesRecord, f SalesFilter) []SalesRecord {
	out := make([]SalesRecord, 0, len(records))
	for _, r := range records {
		if f.Variant != "" && r.Variant != f.Variant {
			continue
		}
		if f.Size != "" && r.Size != f.Size {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort keys recognized by SortSales.
const (
	SortByQuantity = "quantity"
	SortByRevenue  = "revenue"
	SortByDate     = "date"
)

// SortSales returns a stably sorted copy of records. Revenue sorts on the
// totalRevenue field; date sorts on saleDate parsed as a calendar date, so
// "2023-02-01" orders after "2023-01-15" regardless of lexical order. An
// unrecognized key returns the copy in input order; any order other than
// "asc" sorts descending.
func SortSales(records []SalesRecord, key, order string) []SalesRecord {
	sorted := make([]SalesRecord, len(records))
	copy(sorted, records)

	var less func(a, b SalesRecord) bool
	switch key {
	case SortByQuantity:
		less = func(a, b SalesRecord) bool { return a.Quantity < b.Quantity }
	case SortByRevenue:
		less = func(a, b SalesRecord) bool { return a.TotalRevenue.LessThan(b.TotalRevenue) }
	case SortByDate:
		less = func(a, b SalesRecord) bool {
			return dates.ParseISO(a.SaleDate).Before(dates.ParseISO(b.SaleDate))
		}
	default:
		return sorted
	}

	if order == "asc" {
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[j], sorted[i]) })
	}
	return sorted
}

// Variants returns the distinct non-empty variant values, sorted, for the
// dashboard filter dropdown.
func Variants(records []SalesRecord) []string {
	return distinct(records, func(r SalesRecord) string { return r.Variant })
}

// Sizes returns the distinct non-empty size values, sorted.
func Sizes(records []SalesRecord) []string {
	return distinct(records, func(r SalesRecord) string { return r.Size })
}

func distinct(records []SalesRecord, field func(SalesRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := field(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
