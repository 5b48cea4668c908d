package aggregate

import (
	"testing"

	"ggAnalyze/internal/classify"
	"ggAnalyze/internal/loader"
	"ggAnalyze/internal/table"
)

func fileWith(t *testing.T, fill func(*loader.FileData)) *loader.FileData {
	t.Helper()
	fd := loader.NewFileData("test.xlsx")
	if fill != nil {
		fill(fd)
	}
	return fd
}

func TestCombineEmptyInputHasAllSlots(t *testing.T) {
	out := Combine(nil)
	for name, tbl := range out.Map() {
		if tbl == nil {
			t.Fatalf("dataset %s: expected empty table, got nil", name)
		}
		if !tbl.Empty() {
			t.Fatalf("dataset %s: expected empty table", name)
		}
	}
	if len(out.Map()) != 10 {
		t.Fatalf("expected 10 canonical datasets, got %d", len(out.Map()))
	}
}

func TestCombineConcatenatesTipsAcrossFiles(t *testing.T) {
	// File A contributes an alltips row, file B a superadmin row with the
	// same uuid; cross-file duplicates are kept.
	a := fileWith(t, func(fd *loader.FileData) {
		fd.Tips[classify.RoleAllTips] = table.FromRows([][]string{
			{"uuid", "date", "amount", "status"},
			{"u1", "01.02.2024 10:00:00", "100", "finished"},
		})
	})
	b := fileWith(t, func(fd *loader.FileData) {
		fd.Tips[classify.RoleSuperAdmin] = table.FromRows([][]string{
			{"uuid", "date", "amount", "company", "status"},
			{"u1", "01.02.2024 10:00:00", "100", "Acme", "finished"},
		})
	})
	out := Combine([]*loader.FileData{a, b})
	if out.Tips.NumRows() != 2 {
		t.Fatalf("expected 2 tips rows (no cross-file de-duplication), got %d", out.Tips.NumRows())
	}
}

func TestCombineSingletonFirstNonEmptyWins(t *testing.T) {
	empty := fileWith(t, nil)
	second := fileWith(t, func(fd *loader.FileData) {
		fd.Companies[classify.RoleCompanies] = table.FromRows([][]string{
			{"company", "region"},
			{"Acme", "North"},
		})
	})
	third := fileWith(t, func(fd *loader.FileData) {
		fd.Companies[classify.RoleCompanies] = table.FromRows([][]string{
			{"company", "region"},
			{"Other", "South"},
		})
	})
	out := Combine([]*loader.FileData{empty, second, third})
	if out.Companies.NumRows() != 1 {
		t.Fatalf("expected exactly the first non-empty roster, got %d rows", out.Companies.NumRows())
	}
	if got := out.Companies.Cell("company", 0).Str; got != "Acme" {
		t.Fatalf("expected first non-empty file's roster, got %q", got)
	}
}

func TestCombineProjectsOrders(t *testing.T) {
	fd := fileWith(t, func(fd *loader.FileData) {
		fd.OrdersCount = table.FromRows([][]string{
			{"date", "userid", "orders", "helper"},
			{"x", "7", "3", "y"},
		})
	})
	out := Combine([]*loader.FileData{fd})
	cols := out.OrdersCount.Columns()
	if len(cols) != 3 {
		t.Fatalf("expected projection to [date userid orders], got %v", cols)
	}
}

func TestCombineKeepsOrdersWhenProjectionImpossible(t *testing.T) {
	fd := fileWith(t, func(fd *loader.FileData) {
		fd.OrdersCount = table.FromRows([][]string{
			{"date", "total"},
			{"x", "3"},
		})
	})
	out := Combine([]*loader.FileData{fd})
	if out.OrdersCount.NumRows() != 1 || !out.OrdersCount.HasColumn("total") {
		t.Fatalf("expected pass-through when projection columns missing, got %v", out.OrdersCount.Columns())
	}
}

func TestCombineTolerantOfNilFiles(t *testing.T) {
	out := Combine([]*loader.FileData{nil, fileWith(t, nil)})
	if out == nil {
		t.Fatalf("expected a session dataset")
	}
}

// Two-workbook scenario: per-file priority merges feed the additive concat
// while the roster comes from whichever file has one.
func TestCombineEndToEndScenario(t *testing.T) {
	fileA := fileWith(t, func(fd *loader.FileData) {
		fd.Tips[classify.RoleAllTips] = table.FromRows([][]string{
			{"uuid", "amount", "status"},
			{"u1", "100", "finished"},
		})
		fd.Companies[classify.RoleCompanies] = table.FromRows([][]string{
			{"company", "region"},
			{"Acme", "North"},
		})
	})
	fileB := fileWith(t, func(fd *loader.FileData) {
		fd.Tips[classify.RoleSuperAdmin] = table.FromRows([][]string{
			{"uuid", "amount", "company", "status"},
			{"u1", "100", "Acme", "finished"},
		})
	})

	out := Combine([]*loader.FileData{fileA, fileB})

	if out.Tips.NumRows() != 2 {
		t.Fatalf("expected both files' merged tips concatenated, got %d rows", out.Tips.NumRows())
	}
	if got := out.Companies.Cell("company", 0).Str; got != "Acme" {
		t.Fatalf("expected file A's companies table, got %q", got)
	}
	if out.Partners.Empty() != true {
		t.Fatalf("expected empty partners slot")
	}
	if _, ok := out.Dataset("ggtips"); !ok {
		t.Fatalf("expected ggtips dataset key")
	}
}
