// Package dateparse converts the mixed date encodings found in the source
// exports (Excel day serials, dotted day-first text, ISO strings) into time
// cells. Parsing is total: a value either becomes a timestamp or a null,
// never an error.
package dateparse

import (
	"log"
	"strconv"
	"strings"
	"time"

	"ggAnalyze/internal/table"
)

// Excel encodes dates as day counts from this epoch, fractional days for the
// time of day.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const warnSampleLimit = 5

// strategy attempts one interpretation of a textual date, reporting ok=false
// to pass the value to the next strategy in the chain.
type strategy func(s string) (time.Time, bool)

var textChain = []strategy{
	parseExact,
	parseComponents,
	parseInferred,
}

// ParseColumn runs the full fallback chain over a column. The label names
// the sheet in the unparsed-rows warning.
func ParseColumn(cells []table.Cell, label string) []table.Cell {
	out := make([]table.Cell, len(cells))
	var unparsed []string
	for i, c := range cells {
		v, ok := parseCell(c)
		out[i] = v
		if !ok {
			if len(unparsed) < warnSampleLimit {
				unparsed = append(unparsed, c.Display())
			}
		}
	}
	if len(unparsed) > 0 {
		log.Printf("[WARN] sheet %s: some dates could not be parsed, sample: %v", label, unparsed)
	}
	return out
}

// parseCell resolves one cell; ok is false only when a non-empty value had
// to be discarded.
func parseCell(c table.Cell) (table.Cell, bool) {
	switch c.Kind {
	case table.KindNull:
		return table.Null(), true
	case table.KindTime:
		return c, true
	case table.KindNumber:
		f, _ := c.Num.Float64()
		t, ok := fromSerial(f)
		if !ok {
			return table.Null(), false
		}
		return table.TimeCell(t), true
	}

	s := collapseSpaces(c.Str)
	if s == "" || s == "nan" || s == "NaN" {
		return table.Null(), true
	}
	for _, try := range textChain {
		if t, ok := try(s); ok {
			return table.TimeCell(t), true
		}
	}
	return table.Null(), false
}

// ParseServeTimestamps parses serve-order timestamps, which arrive in one
// fixed layout; anything else becomes null with no fallback.
func ParseServeTimestamps(cells []table.Cell) []table.Cell {
	return parseStrict(cells, "02/01/2006/15:04")
}

// ParseCancelTimestamps parses cancellation timestamps the same way.
func ParseCancelTimestamps(cells []table.Cell) []table.Cell {
	return parseStrict(cells, "02.01.2006 15:04")
}

// ParseInferredColumn applies only the generic day-first inference, used for
// the carseat creation dates.
func ParseInferredColumn(cells []table.Cell) []table.Cell {
	out := make([]table.Cell, len(cells))
	for i, c := range cells {
		if c.Kind == table.KindTime {
			out[i] = c
			continue
		}
		if t, ok := parseInferred(collapseSpaces(c.Display())); ok {
			out[i] = table.TimeCell(t)
		} else {
			out[i] = table.Null()
		}
	}
	return out
}

func parseStrict(cells []table.Cell, layout string) []table.Cell {
	out := make([]table.Cell, len(cells))
	for i, c := range cells {
		if c.Kind == table.KindTime {
			out[i] = c
			continue
		}
		if t, err := time.Parse(layout, collapseSpaces(c.Display())); err == nil {
			out[i] = table.TimeCell(t)
		} else {
			out[i] = table.Null()
		}
	}
	return out
}

// fromSerial converts an Excel day serial (fractional days carry the time of
// day). Serials outside a sane window are rejected rather than producing
// dates millennia away.
func fromSerial(f float64) (time.Time, bool) {
	if f <= 0 || f >= 300000 {
		return time.Time{}, false
	}
	days := int(f)
	frac := f - float64(days)
	t := excelEpoch.AddDate(0, 0, days)
	t = t.Add(time.Duration(frac * float64(24*time.Hour)))
	return t, true
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseExact handles the dominant export layout, DD.MM.YYYY HH:MM:SS.
func parseExact(s string) (time.Time, bool) {
	t, err := time.Parse("02.01.2006 15:04:05", s)
	return t, err == nil
}

// parseComponents splits "date time" manually: the date part on dots, the
// time part on colons. It recovers rows the exact layout rejects, such as
// single-digit fields or stray trailing tokens.
func parseComponents(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return time.Time{}, false
	}
	dateParts := strings.Split(fields[0], ".")
	timeParts := strings.Split(fields[1], ":")
	if len(dateParts) != 3 || len(timeParts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 0, 6)
	for _, p := range append(dateParts, timeParts...) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		nums = append(nums, n)
	}
	day, month, year := nums[0], nums[1], nums[2]
	hour, minute, second := nums[3], nums[4], nums[5]
	if month < 1 || month > 12 || day < 1 || day > 31 ||
		hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), true
}

// Day-first layouts must come before anything month-first could swallow.
var inferredLayouts = []string{
	"02.01.2006 15:04:05", "02.01.2006 15:04", "02.01.2006",
	"2.1.2006 15:04:05", "2.1.2006",
	"02/01/2006 15:04:05", "02/01/2006 15:04", "02/01/2006",
	"2/1/2006 15:04:05", "2/1/2006",
	"02-01-2006 15:04:05", "02-01-2006",
	"02-Jan-2006", "2-Jan-2006", "02 Jan 2006",
	"2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC3339, "2006-01-02",
	"2006/01/02",
}

// parseInferred is the last resort: a best-effort sweep over common layouts,
// day-first ordered.
func parseInferred(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inferredLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
