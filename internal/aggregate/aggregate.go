// Package aggregate builds the session-wide view over every uploaded file's
// per-file result. Additive datasets concatenate across files; reference
// rosters are assumed replicated across a tenant's files, so the first
// non-empty contribution wins.
package aggregate

import (
	"ggAnalyze/internal/classify"
	"ggAnalyze/internal/loader"
	"ggAnalyze/internal/normalize"
	"ggAnalyze/internal/table"
)

// SessionData is the merged session view, one table per canonical dataset.
// Every slot is always populated, possibly with an empty table.
type SessionData struct {
	Tips          *table.Table
	Companies     *table.Table
	Partners      *table.Table
	Teammates     *table.Table
	OrdersCount   *table.Table
	Clients       *table.Table
	Carseat       *table.Table
	Users         *table.Table
	ServeOrders   *table.Table
	Cancellations *table.Table
}

// ordersColumns is the projection applied to order-count ledgers before
// concatenation; the source sheets carry extra helper columns the reports
// never read.
var ordersColumns = []string{normalize.ColDate, "userid", "orders"}

// Combine aggregates per-file results in upload order. Duplicate tips uuids
// across files are kept as-is; reconciling them is a reporting-layer
// decision, not an ingestion one.
func Combine(files []*loader.FileData) *SessionData {
	out := &SessionData{
		Tips:          table.New(),
		Companies:     table.New(),
		Partners:      table.New(),
		Teammates:     table.New(),
		OrdersCount:   table.New(),
		Clients:       table.New(),
		Carseat:       table.New(),
		Users:         table.New(),
		ServeOrders:   table.New(),
		Cancellations: table.New(),
	}

	var tips, orders, carseat, users []*table.Table
	for _, fd := range files {
		if fd == nil {
			continue
		}
		if merged := loader.MergeTips(fd); !merged.Empty() {
			tips = append(tips, merged)
		}
		if t := projectOrders(fd.OrdersCount); !t.Empty() {
			orders = append(orders, t)
		}
		if !fd.Carseat.Empty() {
			carseat = append(carseat, fd.Carseat)
		}
		if !fd.Users.Empty() {
			users = append(users, fd.Users)
		}

		if out.Companies.Empty() {
			if merged := loader.MergeCompanies(fd); !merged.Empty() {
				out.Companies = merged
			}
		}
		if out.Partners.Empty() {
			if merged := loader.MergePartners(fd); !merged.Empty() {
				out.Partners = merged
			}
		}
		if out.Teammates.Empty() && !fd.Teammates.Empty() {
			out.Teammates = fd.Teammates
		}
		if out.Clients.Empty() && !fd.Clients.Empty() {
			out.Clients = fd.Clients
		}
		if out.ServeOrders.Empty() && !fd.ServeOrders.Empty() {
			out.ServeOrders = fd.ServeOrders
		}
		if out.Cancellations.Empty() && !fd.Cancellations.Empty() {
			out.Cancellations = fd.Cancellations
		}
	}

	out.Tips = table.Concat(tips...)
	out.OrdersCount = table.Concat(orders...)
	out.Carseat = table.Concat(carseat...)
	out.Users = table.Concat(users...)
	return out
}

// projectOrders narrows an order-count ledger to date/userid/orders when all
// three are present; otherwise the table passes through untouched.
func projectOrders(t *table.Table) *table.Table {
	if t.Empty() {
		return t
	}
	for _, col := range ordersColumns {
		if !t.HasColumn(col) {
			return t
		}
	}
	return t.Project(ordersColumns...)
}

// Map exposes the session view keyed by canonical dataset name, the contract
// the reporting views consume.
func (s *SessionData) Map() map[classify.Dataset]*table.Table {
	return map[classify.Dataset]*table.Table{
		classify.DatasetTips:          s.Tips,
		classify.DatasetCompanies:     s.Companies,
		classify.DatasetPartners:      s.Partners,
		classify.DatasetTeammates:     s.Teammates,
		classify.DatasetOrdersCount:   s.OrdersCount,
		classify.DatasetClients:       s.Clients,
		classify.DatasetCarseat:       s.Carseat,
		classify.DatasetUsers:         s.Users,
		classify.DatasetServeOrders:   s.ServeOrders,
		classify.DatasetCancellations: s.Cancellations,
	}
}

// Dataset looks up one canonical dataset by name.
func (s *SessionData) Dataset(name string) (*table.Table, bool) {
	t, ok := s.Map()[classify.Dataset(name)]
	return t, ok
}

// CarseatStatusLabels maps the normalized carseat status codes to the labels
// the reports display.
var CarseatStatusLabels = map[int64]string{
	5: "Completed",
	6: "Cancelled",
}
