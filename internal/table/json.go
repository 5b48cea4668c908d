package table

import (
	"encoding/json"
	"time"
)

// MarshalJSON renders nulls as JSON null, numbers as bare numerics and
// times as RFC3339 strings, so reporting views get typed values back.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindString:
		return json.Marshal(c.Str)
	case KindNumber:
		return []byte(c.Num.String()), nil
	case KindTime:
		return json.Marshal(c.Time.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

func (t *Table) MarshalJSON() ([]byte, error) {
	payload := struct {
		Columns  []string `json:"columns"`
		Rows     [][]Cell `json:"rows"`
		RowCount int      `json:"rowCount"`
	}{
		Columns:  []string{},
		Rows:     [][]Cell{},
		RowCount: 0,
	}
	if t != nil {
		payload.Columns = t.Columns()
		payload.RowCount = t.rows
		for i := 0; i < t.rows; i++ {
			row := make([]Cell, len(t.cols))
			for j, col := range t.cols {
				row[j] = t.data[col][i]
			}
			payload.Rows = append(payload.Rows, row)
		}
	}
	return json.Marshal(payload)
}
