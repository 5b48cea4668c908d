// Package classify decides which canonical dataset a loaded sheet (or CSV
// table) feeds. Classification is an ordered rule list evaluated top to
// bottom; the first match wins and unmatched sheets are simply ignored.
package classify

import (
	"path/filepath"
	"strings"
)

// Dataset names the canonical buckets a file can contribute to. The string
// values are the keys reporting views consume.
type Dataset string

const (
	DatasetNone          Dataset = ""
	DatasetTips          Dataset = "ggtips"
	DatasetCompanies     Dataset = "ggtipsCompanies"
	DatasetPartners      Dataset = "ggtipsPartners"
	DatasetTeammates     Dataset = "ggTeammates"
	DatasetOrdersCount   Dataset = "ordersCount"
	DatasetClients       Dataset = "clients"
	DatasetCarseat       Dataset = "carseat"
	DatasetUsers         Dataset = "users"
	DatasetServeOrders   Dataset = "serveOrders"
	DatasetCancellations Dataset = "cancellations"
)

// Sheet roles for the datasets that accept multiple contributing sheets per
// file.
const (
	RoleAllTips    = "alltips"
	RoleGGPayers   = "ggpayers"
	RoleSuperAdmin = "superadmin"
	RoleCompanies  = "companies"
	RolePartners   = "partners details"
	RoleCSV        = "csv"
)

// Marker columns that identify a dataset regardless of sheet name; these
// outrank every name rule.
const (
	markerServe  = "acceptedinterval"
	markerCancel = "canceldate"
	markerUser   = "userid"
	markerStatus = "statusid"
)

// Result is a classification tag, role-qualified for the tips, companies and
// partners datasets.
type Result struct {
	Dataset Dataset
	Role    string
}

func none() Result { return Result{Dataset: DatasetNone} }

type rule struct {
	match func(sheet string, cols map[string]bool) bool
	tag   func(sheet string) Result
}

func nameIs(names ...string) func(string, map[string]bool) bool {
	return func(sheet string, _ map[string]bool) bool {
		for _, n := range names {
			if sheet == n {
				return true
			}
		}
		return false
	}
}

func hasColumn(marker string) func(string, map[string]bool) bool {
	return func(_ string, cols map[string]bool) bool { return cols[marker] }
}

func tagged(ds Dataset) func(string) Result {
	return func(string) Result { return Result{Dataset: ds} }
}

func roleTagged(ds Dataset) func(string) Result {
	return func(sheet string) Result { return Result{Dataset: ds, Role: sheet} }
}

// sheetRules is evaluated in order; marker-column rules come first so a
// sheet named "orders count" that carries an acceptedinterval column still
// classifies as serve-order history.
var sheetRules = []rule{
	{hasColumn(markerServe), tagged(DatasetServeOrders)},
	{hasColumn(markerCancel), tagged(DatasetCancellations)},
	{nameIs(RoleAllTips, RoleGGPayers, RoleSuperAdmin), roleTagged(DatasetTips)},
	{nameIs(RoleCompanies), roleTagged(DatasetCompanies)},
	{nameIs(RolePartners), roleTagged(DatasetPartners)},
	{nameIs("carseat"), tagged(DatasetCarseat)},
	{nameIs("gg teammates", "ggteammates"), tagged(DatasetTeammates)},
	{nameIs("orders count"), tagged(DatasetOrdersCount)},
	{nameIs("clients"), tagged(DatasetClients)},
	{nameIs("users"), tagged(DatasetUsers)},
}

// Sheet classifies one workbook sheet by its name and normalized column set.
func Sheet(sheetName string, columns []string) Result {
	name := strings.ToLower(strings.TrimSpace(sheetName))
	cols := columnSet(columns)
	for _, r := range sheetRules {
		if r.match(name, cols) {
			return r.tag(name)
		}
	}
	return none()
}

// CSV classifies a single implicit CSV table. There is no sheet name, so the
// file name prefix and the column signature stand in; anything unrecognized
// defaults to a tips contribution under the csv role.
func CSV(fileName string, columns []string) Result {
	base := strings.ToLower(filepath.Base(fileName))
	cols := columnSet(columns)
	switch {
	case strings.HasPrefix(base, "carseat"), cols[markerStatus]:
		return Result{Dataset: DatasetCarseat}
	case cols[markerServe]:
		return Result{Dataset: DatasetServeOrders}
	case cols[markerCancel]:
		return Result{Dataset: DatasetCancellations}
	case cols[markerUser]:
		return Result{Dataset: DatasetUsers}
	default:
		return Result{Dataset: DatasetTips, Role: RoleCSV}
	}
}

func columnSet(columns []string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return set
}
