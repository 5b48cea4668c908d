package dateparse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ggAnalyze/internal/table"
)

func TestParseColumnNeverFails(t *testing.T) {
	cells := []table.Cell{
		table.Null(),
		table.String(""),
		table.String("nan"),
		table.String("NaN"),
		table.String("not a date"),
		table.Number(decimal.NewFromInt(44000)),
		table.String("15.03.2023 14:30:00"),
		table.String("2023-03-15T14:30:00"),
		table.String("1.2.2023  3:04:05"),
	}
	out := ParseColumn(cells, "test")
	if len(out) != len(cells) {
		t.Fatalf("expected %d cells, got %d", len(cells), len(out))
	}
	for i, c := range out {
		if c.Kind != table.KindNull && c.Kind != table.KindTime {
			t.Fatalf("cell %d: expected null or time, got kind %d", i, c.Kind)
		}
	}
	for _, i := range []int{0, 1, 2, 3, 4} {
		if !out[i].IsNull() {
			t.Fatalf("cell %d: expected null, got %v", i, out[i])
		}
	}
}

func TestParseExcelSerial(t *testing.T) {
	cells := []table.Cell{table.Number(decimal.NewFromInt(44000))}
	out := ParseColumn(cells, "test")
	want := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 44000)
	if out[0].Kind != table.KindTime || !out[0].Time.Equal(want) {
		t.Fatalf("serial 44000: expected %v, got %v", want, out[0])
	}
}

func TestParseExcelSerialFractionalDay(t *testing.T) {
	d, _ := decimal.NewFromString("44000.5")
	out := ParseColumn([]table.Cell{table.Number(d)}, "test")
	want := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 44000).Add(12 * time.Hour)
	if out[0].Kind != table.KindTime || !out[0].Time.Equal(want) {
		t.Fatalf("serial 44000.5: expected %v, got %v", want, out[0])
	}
}

func TestParseExactDayFirstLayout(t *testing.T) {
	out := ParseColumn([]table.Cell{table.String("01.02.2024 10:00:00")}, "test")
	want := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	if out[0].Kind != table.KindTime || !out[0].Time.Equal(want) {
		t.Fatalf("expected %v (day first), got %v", want, out[0])
	}
}

func TestParseComponentFallback(t *testing.T) {
	// Single-digit fields and doubled spaces miss the exact layout but the
	// manual component split recovers them.
	out := ParseColumn([]table.Cell{table.String("5.3.2023  9:07:01")}, "test")
	want := time.Date(2023, 3, 5, 9, 7, 1, 0, time.UTC)
	if out[0].Kind != table.KindTime || !out[0].Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, out[0])
	}
}

func TestParseComponentRejectsBadRanges(t *testing.T) {
	out := ParseColumn([]table.Cell{table.String("32.13.2023 25:61:61")}, "test")
	if !out[0].IsNull() {
		t.Fatalf("expected null for impossible components, got %v", out[0])
	}
}

func TestKeepsAlreadyParsedTimes(t *testing.T) {
	stamp := time.Date(2022, 6, 1, 8, 30, 0, 0, time.UTC)
	out := ParseColumn([]table.Cell{table.TimeCell(stamp)}, "test")
	if !out[0].Time.Equal(stamp) {
		t.Fatalf("expected passthrough of %v, got %v", stamp, out[0])
	}
}

func TestStrictServeLayout(t *testing.T) {
	out := ParseServeTimestamps([]table.Cell{
		table.String("01/02/2024/10:30"),
		table.String("01.02.2024 10:30"),
	})
	want := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)
	if out[0].Kind != table.KindTime || !out[0].Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, out[0])
	}
	if !out[1].IsNull() {
		t.Fatalf("expected null for off-layout serve timestamp, got %v", out[1])
	}
}

func TestStrictCancelLayout(t *testing.T) {
	out := ParseCancelTimestamps([]table.Cell{
		table.String("01.02.2024 10:30"),
		table.String("01/02/2024/10:30"),
	})
	want := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)
	if out[0].Kind != table.KindTime || !out[0].Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, out[0])
	}
	if !out[1].IsNull() {
		t.Fatalf("expected null for off-layout cancel timestamp, got %v", out[1])
	}
}
