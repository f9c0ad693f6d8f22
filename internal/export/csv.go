// Package export turns aggregated rows into downloadable CSV and XLSX
// files. Columns are declared explicitly so every export has a stable,
// reviewed column order rather than whatever map iteration produces.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roamerv/dealer-backend/internal/errs"
)

// Table is a fully materialized export: one header row plus cell values in
// declared column order. Cells may be any shape; Stringify flattens them.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Stringify renders one cell. Scalars print naturally, nested objects
// become JSON, slices join with "; ", nil is empty.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.Decimal:
		return val.String()
	case *decimal.Decimal:
		if val == nil {
			return ""
		}
		return val.String()
	case time.Time:
		return val.Format("2006-01-02")
	case []string:
		return strings.Join(val, "; ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, "; ")
	case fmt.Stringer:
		return val.String()
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return strings.Trim(string(b), `"`)
	}
}

// WriteCSV encodes the table as RFC 4180 CSV. Rows shorter than the
// header are padded, longer ones truncated, so every record is
// length-matched to the declared columns.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return errs.NewValidationError("failed to write CSV header: " + err.Error())
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			if i < len(row) {
				record[i] = Stringify(row[i])
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return errs.NewValidationError("failed to write CSV row: " + err.Error())
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds the download name: {entity}_{dealer display name}_{date}.{ext}.
func Filename(entityLabel, dealerName string, now time.Time, ext string) string {
	dealer := strings.ReplaceAll(strings.TrimSpace(dealerName), " ", "-")
	if dealer == "" {
		dealer = "all"
	}
	return fmt.Sprintf("%s_%s_%s.%s", entityLabel, dealer, now.Format("2006-01-02"), ext)
}
