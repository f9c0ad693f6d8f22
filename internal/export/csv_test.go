package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestStringify(t *testing.T) {
	price := decimal.NewFromFloat(1250.50)
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "ABC123", "ABC123"},
		{"int", 42, "42"},
		{"float", 3.5, "3.5"},
		{"bool", true, "true"},
		{"decimal", price, "1250.5"},
		{"decimal pointer", &price, "1250.5"},
		{"nil decimal pointer", (*decimal.Decimal)(nil), ""},
		{"string slice", []string{"a", "b"}, "a; b"},
		{"mixed slice", []any{"a", 1}, "a; 1"},
		{"object", map[string]any{"x": 1}, `{"x":1}`},
		{"time", time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), "2026-03-04"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stringify(tc.in); got != tc.want {
				t.Fatalf("Stringify(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	table := Table{
		Columns: []string{"Chassis", "Customer", "Notes"},
		Rows: [][]any{
			{"ABC123", `Smith, John "JJ"`, "left, at gate"},
			{"DEF456", "Jones", nil},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if got := records[1][1]; got != `Smith, John "JJ"` {
		t.Fatalf("embedded comma and quote did not survive: %q", got)
	}
	if got := records[2][2]; got != "" {
		t.Fatalf("nil cell = %q, want empty", got)
	}
}

func TestWriteCSVPadsShortRows(t *testing.T) {
	table := Table{
		Columns: []string{"A", "B", "C"},
		Rows:    [][]any{{"only"}},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records[1]) != 3 {
		t.Fatalf("row has %d fields, want 3", len(records[1]))
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	got := Filename("yard", "Acme RV", now, "csv")
	if got != "yard_Acme-RV_2026-09-01.csv" {
		t.Fatalf("Filename = %q", got)
	}
	if got := Filename("orders", "", now, "xlsx"); !strings.HasPrefix(got, "orders_all_") {
		t.Fatalf("empty dealer = %q", got)
	}
}
