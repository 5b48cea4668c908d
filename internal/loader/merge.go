package loader

import (
	"errors"
	"fmt"
	"log"

	"ggAnalyze/internal/classify"
	"ggAnalyze/internal/normalize"
	"ggAnalyze/internal/table"
)

// ErrMissingKey reports that a participating role table lacks the merge key
// column. This is a hard stop for the merge call (it returns empty), distinct
// from a role that is simply absent, which is skipped silently.
var ErrMissingKey = errors.New("merge key column missing")

// Priority orders for the role-qualified datasets. The csv role sits last so
// CSV-contributed tips rows only fill gaps left by the workbook sheets.
var (
	TipsPriority      = []string{classify.RoleAllTips, classify.RoleGGPayers, classify.RoleSuperAdmin, classify.RoleCSV}
	CompaniesPriority = []string{classify.RoleCompanies}
	PartnersPriority  = []string{classify.RolePartners}
)

// MergeRoles layers the role tables onto each other in priority order, keyed
// by keyCol, first-non-null-wins: the highest-priority table's values stand,
// later tables only fill null cells and contribute rows for unseen keys.
func MergeRoles(roles map[string]*table.Table, priority []string, keyCol string) (*table.Table, error) {
	ordered := make([]*table.Table, 0, len(priority))
	names := make([]string, 0, len(priority))
	for _, role := range priority {
		if t, ok := roles[role]; ok && !t.Empty() {
			ordered = append(ordered, t.Clone())
			names = append(names, role)
		}
	}
	if len(ordered) == 0 {
		return table.New(), nil
	}

	for i, t := range ordered {
		t.CleanSentinels()
		if !t.HasColumn(keyCol) {
			return table.New(), fmt.Errorf("%w: no %q in role %s", ErrMissingKey, keyCol, names[i])
		}
	}

	base := ordered[0]
	index := make(map[string]int, base.NumRows())
	for i := 0; i < base.NumRows(); i++ {
		if k := base.Cell(keyCol, i); !k.IsNull() {
			index[k.Display()] = i
		}
	}

	for _, overlay := range ordered[1:] {
		for _, col := range overlay.Columns() {
			if !base.HasColumn(col) {
				base.SetColumn(col, make([]table.Cell, base.NumRows()))
			}
		}
		for i := 0; i < overlay.NumRows(); i++ {
			row := overlay.Row(i)
			key := row[keyCol]
			at, seen := -1, false
			if !key.IsNull() {
				if j, ok := index[key.Display()]; ok {
					at, seen = j, true
				}
			}
			if !seen {
				base.AppendRow(row)
				if !key.IsNull() {
					index[key.Display()] = base.NumRows() - 1
				}
				continue
			}
			for col, cell := range row {
				if base.Cell(col, at).IsNull() && !cell.IsNull() {
					base.SetCell(col, at, cell)
				}
			}
		}
	}
	return base, nil
}

// MergeTips resolves one file's tips role sheets into a single ledger keyed
// by uuid; a missing key column degrades to an empty ledger with an error
// log, never a failed load.
func MergeTips(fd *FileData) *table.Table {
	merged, err := MergeRoles(fd.Tips, TipsPriority, normalize.ColUUID)
	if err != nil {
		log.Printf("[ERROR] tips merge for %s: %v", fd.Path, err)
	}
	return merged
}

// MergeCompanies resolves the company roster, keyed by company.
func MergeCompanies(fd *FileData) *table.Table {
	merged, err := MergeRoles(fd.Companies, CompaniesPriority, normalize.ColCompany)
	if err != nil {
		log.Printf("[ERROR] companies merge for %s: %v", fd.Path, err)
	}
	return merged
}

// MergePartners resolves the partner roster, keyed by partner.
func MergePartners(fd *FileData) *table.Table {
	merged, err := MergeRoles(fd.Partners, PartnersPriority, normalize.ColPartner)
	if err != nil {
		log.Printf("[ERROR] partners merge for %s: %v", fd.Path, err)
	}
	return merged
}
