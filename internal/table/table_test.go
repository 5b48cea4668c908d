package table

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFromRawTypesCells(t *testing.T) {
	if c := FromRaw("100.50"); c.Kind != KindNumber || !c.Num.Equal(decimal.RequireFromString("100.50")) {
		t.Fatalf("expected number 100.50, got %+v", c)
	}
	if c := FromRaw("hello"); c.Kind != KindString || c.Str != "hello" {
		t.Fatalf("expected string cell, got %+v", c)
	}
	if c := FromRaw("   "); c.Kind != KindString || c.Str != "" {
		t.Fatalf("expected empty string cell, got %+v", c)
	}
}

func TestFromRowsPadsShortRows(t *testing.T) {
	tbl := FromRows([][]string{
		{"uuid", "amount", "status"},
		{"u1", "100"},
	})
	if tbl.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.NumRows())
	}
	if !tbl.Cell("status", 0).IsNull() {
		t.Fatalf("expected padded null, got %+v", tbl.Cell("status", 0))
	}
}

func TestRenameKeepsFirstOnCollision(t *testing.T) {
	tbl := FromRows([][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	})
	dropped := tbl.Rename(map[string]string{"a": "x", "b": "x"})
	if len(dropped) != 1 || dropped[0] != "b" {
		t.Fatalf("expected [b] dropped, got %v", dropped)
	}
	cols := tbl.Columns()
	if len(cols) != 2 || cols[0] != "x" || cols[1] != "c" {
		t.Fatalf("expected [x c], got %v", cols)
	}
	if !tbl.Cell("x", 0).Num.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected first column's data kept, got %+v", tbl.Cell("x", 0))
	}
}

func TestCleanSentinels(t *testing.T) {
	tbl := New("status", "when")
	tbl.AppendRow(map[string]Cell{"status": String("N/A"), "when": TimeCell(time.Time{})})
	tbl.AppendRow(map[string]Cell{"status": String("ok"), "when": TimeCell(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))})
	tbl.CleanSentinels()
	if !tbl.Cell("status", 0).IsNull() {
		t.Fatalf("expected N/A cleaned to null")
	}
	if !tbl.Cell("when", 0).IsNull() {
		t.Fatalf("expected zero time cleaned to null")
	}
	if tbl.Cell("status", 1).Str != "ok" || tbl.Cell("when", 1).IsNull() {
		t.Fatalf("expected real values untouched")
	}
}

func TestConcatUnionsColumns(t *testing.T) {
	a := FromRows([][]string{{"uuid", "amount"}, {"u1", "100"}})
	b := FromRows([][]string{{"uuid", "company"}, {"u2", "Acme"}})
	out := Concat(a, b)
	if out.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.NumRows())
	}
	cols := out.Columns()
	if len(cols) != 3 {
		t.Fatalf("expected union of 3 columns, got %v", cols)
	}
	if !out.Cell("company", 0).IsNull() {
		t.Fatalf("expected null fill for missing column")
	}
	if out.Cell("company", 1).Str != "Acme" {
		t.Fatalf("expected Acme, got %+v", out.Cell("company", 1))
	}
}

func TestConcatSkipsEmpty(t *testing.T) {
	out := Concat(New("a"), nil, FromRows([][]string{{"a"}, {"1"}}))
	if out.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", out.NumRows())
	}
}

func TestProject(t *testing.T) {
	tbl := FromRows([][]string{
		{"date", "userid", "orders", "extra"},
		{"x", "7", "3", "y"},
	})
	out := tbl.Project("date", "userid", "orders", "missing")
	cols := out.Columns()
	if len(cols) != 3 || cols[0] != "date" || cols[1] != "userid" || cols[2] != "orders" {
		t.Fatalf("expected [date userid orders], got %v", cols)
	}
	if out.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", out.NumRows())
	}
}
