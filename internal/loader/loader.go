// Package loader reads one uploaded spreadsheet file and produces the
// per-file canonical dataset result. Every failure mode degrades to empty
// tables plus a log entry; a batch load over a session's file list must
// never abort because one file is bad.
package loader

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"ggAnalyze/internal/classify"
	"ggAnalyze/internal/dateparse"
	"ggAnalyze/internal/normalize"
	"ggAnalyze/internal/table"
)

// Load reads path and classifies its sheets into canonical dataset slots.
// Unsupported extensions and missing files yield the all-empty result.
func Load(path string) *FileData {
	fd := NewFileData(path)

	if _, err := os.Stat(path); err != nil {
		log.Printf("[ERROR] file %s does not exist: %v", path, err)
		return fd
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		loadWorkbook(path, fd)
	case ".csv":
		loadCSV(path, fd)
	default:
		log.Printf("[WARN] unsupported file type for %s, only .xlsx and .csv are loaded", path)
	}
	return fd
}

func loadWorkbook(path string, fd *FileData) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		log.Printf("[ERROR] failed to open workbook %s: %v", path, err)
		return
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Printf("[ERROR] failed to read sheet %s of %s: %v", sheet, path, err)
			continue
		}
		t := table.FromRows(rows)
		stripUnnamed(t)
		normalize.Apply(t)

		res := classify.Sheet(sheet, t.Columns())
		if res.Dataset == classify.DatasetNone {
			continue
		}
		log.Printf("[INFO] sheet %s of %s classified as %s with columns %v",
			sheet, filepath.Base(path), res.Dataset, t.Columns())
		finishTable(res, t, sheet)
		fd.assign(res, t)
	}
}

func loadCSV(path string, fd *FileData) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[ERROR] failed to open %s: %v", path, err)
		return
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		log.Printf("[ERROR] failed to parse csv %s: %v", path, err)
		return
	}
	t := table.FromRows(rows)
	stripUnnamed(t)
	normalize.ApplyCSV(t)

	res := classify.CSV(path, t.Columns())
	log.Printf("[INFO] csv %s classified as %s with columns %v",
		filepath.Base(path), res.Dataset, t.Columns())
	finishTable(res, t, filepath.Base(path))
	fd.assign(res, t)
}

// finishTable applies the dataset-specific date handling and carseat
// post-processing after classification.
func finishTable(res classify.Result, t *table.Table, label string) {
	switch res.Dataset {
	case classify.DatasetServeOrders:
		if cells := t.Column("acceptedinterval"); cells != nil {
			t.SetColumn("acceptedinterval", dateparse.ParseServeTimestamps(cells))
		}
	case classify.DatasetCancellations:
		if cells := t.Column("canceldate"); cells != nil {
			t.SetColumn("canceldate", dateparse.ParseCancelTimestamps(cells))
		}
	case classify.DatasetCarseat:
		postProcessCarseat(t)
	default:
		if cells := t.Column(normalize.ColDate); cells != nil {
			t.SetColumn(normalize.ColDate, dateparse.ParseColumn(cells, label))
		}
	}
}

// postProcessCarseat normalizes the carseat bookings table: helper columns
// go away, status code 4 is folded into 5 (completed) for reporting, and the
// creation date gets day-first inference only.
func postProcessCarseat(t *table.Table) {
	t.DropColumn("options")
	t.DropColumn("count")

	if cells := t.Column("statusid"); cells != nil {
		four := decimal.NewFromInt(4)
		five := decimal.NewFromInt(5)
		for i, c := range cells {
			if c.Kind == table.KindNumber && c.Num.Equal(four) {
				cells[i] = table.Number(five)
			}
		}
	}
	if cells := t.Column(normalize.ColDate); cells != nil {
		t.SetColumn(normalize.ColDate, dateparse.ParseInferredColumn(cells))
	}
}

// stripUnnamed drops auto-indexed placeholder columns before normalization.
func stripUnnamed(t *table.Table) {
	for _, col := range t.Columns() {
		if normalize.IsUnnamed(col) {
			t.DropColumn(col)
		}
	}
}
