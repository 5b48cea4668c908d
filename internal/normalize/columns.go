// Package normalize standardizes spreadsheet column headers onto the
// canonical vocabulary the rest of the pipeline keys on.
package normalize

import (
	"strings"

	"ggAnalyze/internal/table"
)

// Canonical names every consumer can rely on.
const (
	ColUUID          = "uuid"
	ColDate          = "date"
	ColCompany       = "company"
	ColPartner       = "partner"
	ColRegion        = "region"
	ColWorkingStatus = "working status"
)

// synonyms maps a normalized header onto its canonical column name. Headers
// not listed here pass through in normalized form.
var synonyms = map[string]string{
	"uuid":          ColUUID,
	"remoteorderid": ColUUID,

	"date":            ColDate,
	"createdat":       ColDate,
	"created at":      ColDate,
	"transactiondate": ColDate,

	"company":      ColCompany,
	"companyname":  ColCompany,
	"company name": ColCompany,

	"partner":      ColPartner,
	"name":         ColPartner,
	"partnername":  ColPartner,
	"partner name": ColPartner,

	"region": ColRegion,

	"workingstatus":  ColWorkingStatus,
	"working status": ColWorkingStatus,
}

// Key lowercases, trims and strips hyphens/underscores. This is the Excel
// ingestion variant; internal spaces survive.
func Key(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// KeyCSV additionally strips internal spaces. The CSV exports arrived with
// headers spaced differently from the workbook ones, and the divergence is
// kept; the synonym table lands both variants on the same canonical name.
func KeyCSV(raw string) string {
	return strings.ReplaceAll(Key(raw), " ", "")
}

// Canonical resolves a raw header to its canonical column name.
func Canonical(raw string) string {
	k := Key(raw)
	if c, ok := synonyms[k]; ok {
		return c
	}
	return k
}

// CanonicalCSV is the CSV-path variant of Canonical.
func CanonicalCSV(raw string) string {
	k := KeyCSV(raw)
	if c, ok := synonyms[k]; ok {
		return c
	}
	return k
}

// UnnamedPrefix marks auto-indexed columns spreadsheet tools emit for blank
// headers ("Unnamed: 7"); those are dropped before normalization.
const UnnamedPrefix = "unnamed"

// IsUnnamed reports whether a raw header is a spreadsheet auto-index
// artifact.
func IsUnnamed(raw string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), UnnamedPrefix)
}

// Apply renames every column of t to its canonical name (Excel variant),
// keeping the first occurrence on collisions, and lowercases the values of a
// resulting "working status" column.
func Apply(t *table.Table) {
	apply(t, Canonical)
}

// ApplyCSV is Apply with the CSV header variant.
func ApplyCSV(t *table.Table) {
	apply(t, CanonicalCSV)
}

func apply(t *table.Table, canon func(string) string) {
	mapping := make(map[string]string)
	for _, col := range t.Columns() {
		mapping[col] = canon(col)
	}
	t.Rename(mapping)

	if cells := t.Column(ColWorkingStatus); cells != nil {
		for i, c := range cells {
			if c.Kind == table.KindString {
				cells[i] = table.String(strings.ToLower(c.Str))
			}
		}
	}
}
