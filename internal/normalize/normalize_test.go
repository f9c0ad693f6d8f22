package normalize

import (
	"encoding/json"
	"testing"

	"github.com/roamerv/dealer-backend/internal/models"
)

func TestRowsKeyedForm(t *testing.T) {
	raw := json.RawMessage(`{
		"CH001": {"customer": "Smith"},
		"CH002": {"id": "override", "customer": "Jones"}
	}`)
	rows := Rows(raw)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	byCustomer := map[string]string{}
	for _, r := range rows {
		byCustomer[r.String("customer")] = r.ID
	}
	if byCustomer["Smith"] != "CH001" {
		t.Fatalf("database key should become id, got %q", byCustomer["Smith"])
	}
	if byCustomer["Jones"] != "override" {
		t.Fatalf("explicit id field should win, got %q", byCustomer["Jones"])
	}
}

func TestRowsArrayFormWithNullGaps(t *testing.T) {
	raw := json.RawMessage(`[{"customer": "A"}, null, {"customer": "B"}]`)
	rows := Rows(raw)
	if len(rows) != 2 {
		t.Fatalf("null gaps should be skipped, got %d rows", len(rows))
	}
	if rows[0].ID != "row-0" {
		t.Fatalf("positional fallback id mismatch: %q", rows[0].ID)
	}
}

func TestRowsMalformedSnapshot(t *testing.T) {
	for _, raw := range []string{"", "null", `"just a string"`, "42", "{broken"} {
		if got := Rows(json.RawMessage(raw)); len(got) != 0 {
			t.Fatalf("snapshot %q should normalize to empty, got %d rows", raw, len(got))
		}
	}
}

func TestAliasCoalescing(t *testing.T) {
	raw := json.RawMessage(`{
		"k": {
			"Chassis": "CH123",
			"customer": "",
			"CustomerName": "Fallback Customer",
			"_source": {"poFinalInvoiceValue": "1,250.50"}
		}
	}`)
	rows := Rows(raw)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if got := r.String("chassis", "Chassis"); got != "CH123" {
		t.Fatalf("chassis alias mismatch: %q", got)
	}
	// Empty first candidate must fall through to the legacy alias.
	if got := r.String("customer", "CustomerName"); got != "Fallback Customer" {
		t.Fatalf("customer coalesce mismatch: %q", got)
	}
	if got := r.Number("wholesalePrice", "_source.poFinalInvoiceValue"); got != 1250.50 {
		t.Fatalf("nested numeric coalesce mismatch: %v", got)
	}
	// Failed coercion is 0, never an error.
	if got := r.Number("customer", "CustomerName"); got != 0 {
		t.Fatalf("unparseable number should be 0, got %v", got)
	}
}

func TestHasVersusNonEmpty(t *testing.T) {
	raw := json.RawMessage(`{
		"a": {"chassis": "", "dealer": "Acme RV"},
		"b": {"dealer": "Acme RV"}
	}`)
	rows := Rows(raw)
	byID := map[string]Row{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	if !byID["a"].Has("chassis") {
		t.Fatal("present-but-empty chassis should still count as present")
	}
	if byID["a"].String("chassis") != "" {
		t.Fatal("empty chassis should stringify empty")
	}
	if byID["b"].Has("chassis") {
		t.Fatal("absent chassis key must not count as present")
	}
}

func TestOrdersScheduleFilter(t *testing.T) {
	raw := json.RawMessage(`{
		"CH1": {"chassis": "CH1", "customer": "Kept", "productionStatus": "Chassis"},
		"CH2": {"chassis": "CH2", "customer": "Done", "productionStatus": "Finished"},
		"CH3": {"chassis": "CH3", "productionStatus": "Chassis"},
		"CH4": {"customer": "No Chassis", "dealer": "Acme RV"}
	}`)

	got := Orders(raw, ScheduleOptions{})
	if len(got) != 1 || got[0].Chassis != "CH1" {
		t.Fatalf("default filter should keep only CH1, got %+v", got)
	}

	withFinished := Orders(raw, ScheduleOptions{IncludeFinished: true})
	if len(withFinished) != 2 {
		t.Fatalf("IncludeFinished should add CH2, got %d", len(withFinished))
	}

	withEmpty := Orders(raw, ScheduleOptions{IncludeNoChassis: true, IncludeNoCustomer: true, IncludeFinished: true})
	if len(withEmpty) != 4 {
		t.Fatalf("all overrides should keep every row, got %d", len(withEmpty))
	}
	for _, o := range withEmpty {
		if o.Customer == "No Chassis" && o.HasChassis {
			t.Fatal("row without a chassis key must have HasChassis == false")
		}
	}
}

func TestYardEntriesTypeClassification(t *testing.T) {
	raw := json.RawMessage(`{
		"CH1": {"receivedAt": "2024-06-01T00:00:00Z", "model": "Rover 19", "customer": "Acme Stock"},
		"CH2": {"receivedAt": "2024-06-02T00:00:00Z", "model": "Rover 21", "customer": "J. Smith"},
		"CH3": {"receivedAt": "2024-06-03T00:00:00Z", "model": "Rover 21", "customer": "Anything", "type": "Stock"}
	}`)
	entries := YardEntries(raw, "acme-rv")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	types := map[string]models.EntryType{}
	for _, e := range entries {
		if e.DealerSlug != "acme-rv" {
			t.Fatalf("dealer slug not stamped: %+v", e)
		}
		types[e.Chassis] = e.Type
	}
	if types["CH1"] != models.EntryTypeStock {
		t.Fatal("stock customer should classify as Stock")
	}
	if types["CH2"] != models.EntryTypeCustomer {
		t.Fatal("named customer should classify as Customer")
	}
	if types["CH3"] != models.EntryTypeStock {
		t.Fatal("explicit type field should win over the heuristic")
	}
}

func TestPGIRecordsHistoryHidden(t *testing.T) {
	raw := json.RawMessage(`{
		"CH1": {"pgiDate": "01/06/2024", "dealer": "Acme RV"},
		"CH2": {"pgiDate": "02/06/2024", "dealer": "Acme RV", "history": true}
	}`)
	if got := PGIRecords(raw, false); len(got) != 1 || got[0].Chassis != "CH1" {
		t.Fatalf("history rows should be hidden by default, got %+v", got)
	}
	if got := PGIRecords(raw, true); len(got) != 2 {
		t.Fatalf("includeHistory should surface both rows, got %d", len(got))
	}
}

func TestModelSpecsLookup(t *testing.T) {
	raw := json.RawMessage(`{
		"Rover 19": {"modelRange": "Rover", "axle": "Single", "length": "19ft"}
	}`)
	specs := ModelSpecs(raw)
	spec, ok := specs["rover 19"]
	if !ok {
		t.Fatal("lookup key should be lower-cased model name")
	}
	if spec.ModelRange != "Rover" || spec.Axle != "Single" {
		t.Fatalf("spec fields mismatch: %+v", spec)
	}
}
