package loader

import (
	"ggAnalyze/internal/classify"
	"ggAnalyze/internal/table"
)

// FileData is the complete per-file result: one slot per canonical dataset,
// always present so consumers branch on emptiness, never on existence. The
// tips, companies and partners slots hold role-keyed tables because several
// sheets of one workbook can feed them.
type FileData struct {
	Path string

	Tips      map[string]*table.Table
	Companies map[string]*table.Table
	Partners  map[string]*table.Table

	Teammates     *table.Table
	OrdersCount   *table.Table
	Clients       *table.Table
	Carseat       *table.Table
	Users         *table.Table
	ServeOrders   *table.Table
	Cancellations *table.Table
}

// NewFileData returns an all-empty result with every slot initialized.
func NewFileData(path string) *FileData {
	return &FileData{
		Path: path,
		Tips: map[string]*table.Table{
			classify.RoleAllTips:    table.New(),
			classify.RoleGGPayers:   table.New(),
			classify.RoleSuperAdmin: table.New(),
		},
		Companies: map[string]*table.Table{
			classify.RoleCompanies: table.New(),
		},
		Partners: map[string]*table.Table{
			classify.RolePartners: table.New(),
		},
		Teammates:     table.New(),
		OrdersCount:   table.New(),
		Clients:       table.New(),
		Carseat:       table.New(),
		Users:         table.New(),
		ServeOrders:   table.New(),
		Cancellations: table.New(),
	}
}

// TipsEmpty reports whether no tips sheet produced any rows; the upload
// cache uses it to decide a cached parse is worth redoing.
func (fd *FileData) TipsEmpty() bool {
	for _, t := range fd.Tips {
		if !t.Empty() {
			return false
		}
	}
	return true
}

// assign routes a classified table into its slot.
func (fd *FileData) assign(res classify.Result, t *table.Table) {
	switch res.Dataset {
	case classify.DatasetTips:
		fd.Tips[res.Role] = t
	case classify.DatasetCompanies:
		fd.Companies[res.Role] = t
	case classify.DatasetPartners:
		fd.Partners[res.Role] = t
	case classify.DatasetTeammates:
		fd.Teammates = t
	case classify.DatasetOrdersCount:
		fd.OrdersCount = t
	case classify.DatasetClients:
		fd.Clients = t
	case classify.DatasetCarseat:
		fd.Carseat = t
	case classify.DatasetUsers:
		fd.Users = t
	case classify.DatasetServeOrders:
		fd.ServeOrders = t
	case classify.DatasetCancellations:
		fd.Cancellations = t
	}
}
