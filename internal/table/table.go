package table

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tags the value stored in a Cell.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindTime
)

// Cell is a single tagged spreadsheet value. Numbers are kept as decimals so
// amount columns survive re-serialization without float drift.
type Cell struct {
	Kind Kind
	Str  string
	Num  decimal.Decimal
	Time time.Time
}

func Null() Cell                     { return Cell{Kind: KindNull} }
func String(s string) Cell           { return Cell{Kind: KindString, Str: s} }
func Number(d decimal.Decimal) Cell  { return Cell{Kind: KindNumber, Num: d} }
func TimeCell(t time.Time) Cell      { return Cell{Kind: KindTime, Time: t} }

func (c Cell) IsNull() bool { return c.Kind == KindNull }

// Display renders the cell for logs and JSON payloads.
func (c Cell) Display() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		return c.Num.String()
	case KindTime:
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// FromRaw converts one raw spreadsheet cell. Empty strings stay empty-string
// cells here; sentinel cleanup is a separate, explicit step.
func FromRaw(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return String("")
	}
	if d, err := decimal.NewFromString(trimmed); err == nil {
		return Number(d)
	}
	return String(s)
}

// Meaningless string tokens that stand in for "no value" in the source
// exports. Matched exactly, after trimming.
var sentinelTokens = map[string]bool{
	"N/A":       true,
	"none":      true,
	"not found": true,
	"":          true,
	"-":         true,
	"nan":       true,
	"null":      true,
	"undefined": true,
}

// IsSentinel reports whether the cell carries one of the meaningless tokens,
// or a zero time. Typed number cells are never sentinels.
func (c Cell) IsSentinel() bool {
	switch c.Kind {
	case KindString:
		return sentinelTokens[strings.TrimSpace(c.Str)]
	case KindTime:
		return c.Time.IsZero()
	default:
		return false
	}
}

// Table is a column-oriented tabular structure: ordered column names plus a
// cell sequence per column, all of equal length.
type Table struct {
	cols []string
	data map[string][]Cell
	rows int
}

func New(cols ...string) *Table {
	t := &Table{data: make(map[string][]Cell)}
	for _, c := range cols {
		if _, dup := t.data[c]; dup {
			continue
		}
		t.cols = append(t.cols, c)
		t.data[c] = nil
	}
	return t
}

// FromRows builds a table from a header row plus data rows, as returned by
// excelize.GetRows or csv.ReadAll. Short rows are padded with nulls, long
// rows truncated to the header width.
func FromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return New()
	}
	header := rows[0]
	t := New(header...)
	for _, row := range rows[1:] {
		cells := make(map[string]Cell, len(header))
		for i, col := range header {
			if i < len(row) {
				cells[col] = FromRaw(row[i])
			} else {
				cells[col] = Null()
			}
		}
		t.AppendRow(cells)
	}
	return t
}

func (t *Table) Columns() []string { return append([]string(nil), t.cols...) }

func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

func (t *Table) NumRows() int { return t.rows }

func (t *Table) Empty() bool { return t == nil || t.rows == 0 }

// Column returns the cell sequence for name, or nil when absent.
func (t *Table) Column(name string) []Cell { return t.data[name] }

// SetColumn replaces (or appends) a column. The cell count must match the
// table's row count unless the table is empty.
func (t *Table) SetColumn(name string, cells []Cell) {
	if _, ok := t.data[name]; !ok {
		t.cols = append(t.cols, name)
	}
	if t.rows == 0 && len(t.cols) == 1 {
		t.rows = len(cells)
	}
	if len(cells) != t.rows {
		padded := make([]Cell, t.rows)
		copy(padded, cells)
		for i := len(cells); i < t.rows; i++ {
			padded[i] = Null()
		}
		cells = padded
	}
	t.data[name] = cells
}

func (t *Table) DropColumn(name string) {
	if _, ok := t.data[name]; !ok {
		return
	}
	delete(t.data, name)
	for i, c := range t.cols {
		if c == name {
			t.cols = append(t.cols[:i], t.cols[i+1:]...)
			break
		}
	}
}

// AppendRow adds one row; columns missing from cells get nulls, unknown keys
// are ignored.
func (t *Table) AppendRow(cells map[string]Cell) {
	for _, col := range t.cols {
		v, ok := cells[col]
		if !ok {
			v = Null()
		}
		t.data[col] = append(t.data[col], v)
	}
	t.rows++
}

// Row extracts row i as a column→cell map.
func (t *Table) Row(i int) map[string]Cell {
	out := make(map[string]Cell, len(t.cols))
	for _, col := range t.cols {
		out[col] = t.data[col][i]
	}
	return out
}

func (t *Table) Cell(col string, row int) Cell {
	cells, ok := t.data[col]
	if !ok || row < 0 || row >= len(cells) {
		return Null()
	}
	return cells[row]
}

func (t *Table) SetCell(col string, row int, c Cell) {
	if cells, ok := t.data[col]; ok && row >= 0 && row < len(cells) {
		cells[row] = c
	}
}

func (t *Table) Clone() *Table {
	out := New(t.cols...)
	out.rows = t.rows
	for _, col := range t.cols {
		out.data[col] = append([]Cell(nil), t.data[col]...)
	}
	return out
}

// Rename applies a raw→new mapping to the column names in order. When two
// columns collapse onto the same name only the first survives; the rest are
// dropped and reported back (and logged) so the caller can surface a warning.
func (t *Table) Rename(mapping map[string]string) []string {
	newCols := make([]string, 0, len(t.cols))
	newData := make(map[string][]Cell, len(t.cols))
	var dropped []string
	for _, col := range t.cols {
		name, ok := mapping[col]
		if !ok {
			name = col
		}
		if _, dup := newData[name]; dup {
			dropped = append(dropped, col)
			continue
		}
		newCols = append(newCols, name)
		newData[name] = t.data[col]
	}
	if len(dropped) > 0 {
		log.Printf("[WARN] duplicate columns after normalization, keeping first occurrence: %v", dropped)
	}
	t.cols = newCols
	t.data = newData
	return dropped
}

// CleanSentinels rewrites every meaningless cell to a true null.
func (t *Table) CleanSentinels() {
	for _, col := range t.cols {
		cells := t.data[col]
		for i, c := range cells {
			if c.IsSentinel() {
				cells[i] = Null()
			}
		}
	}
}

// Project keeps only the named columns, in the given order. Columns the
// table does not have are skipped.
func (t *Table) Project(cols ...string) *Table {
	keep := make([]string, 0, len(cols))
	for _, c := range cols {
		if t.HasColumn(c) {
			keep = append(keep, c)
		}
	}
	out := New(keep...)
	out.rows = t.rows
	for _, col := range keep {
		out.data[col] = append([]Cell(nil), t.data[col]...)
	}
	return out
}

// Concat appends tables row-wise in order, taking the union of columns and
// null-filling the gaps. Nil and empty inputs contribute nothing.
func Concat(tables ...*Table) *Table {
	var cols []string
	seen := make(map[string]bool)
	for _, t := range tables {
		if t.Empty() {
			continue
		}
		for _, c := range t.cols {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	out := New(cols...)
	for _, t := range tables {
		if t.Empty() {
			continue
		}
		for i := 0; i < t.rows; i++ {
			out.AppendRow(t.Row(i))
		}
	}
	return out
}
