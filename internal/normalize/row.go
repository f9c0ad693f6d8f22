// Package normalize converts raw Realtime Database snapshots into canonical
// typed rows. Snapshots arrive either as a key→object map or as an array;
// field names vary across historical feed versions, so every canonical
// field is resolved through an ordered alias list. Normalization never
// fails on malformed input: the worst case is a defaulted field.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row is one decoded snapshot entry. ID is the database key (map form) or a
// positional fallback (array form), unless the record carries its own id.
type Row struct {
	ID   string
	data map[string]any
}

// Rows decodes a snapshot into entries. A null or undecodable snapshot is
// an empty slice, never an error: a failing feed reads as an empty
// collection until it recovers.
func Rows(raw json.RawMessage) []Row {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err == nil {
		out := make([]Row, 0, len(keyed))
		for key, val := range keyed {
			if r, ok := decodeRow(val, key); ok {
				out = append(out, r)
			}
		}
		return out
	}

	var listed []json.RawMessage
	if err := json.Unmarshal(raw, &listed); err == nil {
		out := make([]Row, 0, len(listed))
		for i, val := range listed {
			if r, ok := decodeRow(val, fmt.Sprintf("row-%d", i)); ok {
				out = append(out, r)
			}
		}
		return out
	}

	return nil
}

func decodeRow(raw json.RawMessage, fallbackID string) (Row, bool) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		// RTDB array snapshots pad gaps with nulls; skip them.
		return Row{}, false
	}
	r := Row{ID: fallbackID, data: data}
	// An explicit id on the record wins over the database key.
	if id := r.String("id", "Id", "ID"); id != "" {
		r.ID = id
	}
	return r, true
}

// lookup resolves a candidate key, supporting one level of dot nesting for
// wrapped payloads ("_source.poFinalInvoiceValue").
func (r Row) lookup(key string) (any, bool) {
	if dot := strings.IndexByte(key, '.'); dot >= 0 {
		outer, ok := r.data[key[:dot]]
		if !ok {
			return nil, false
		}
		nested, ok := outer.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := nested[key[dot+1:]]
		return v, ok
	}
	v, ok := r.data[key]
	return v, ok
}

// Has reports whether any of the candidate keys is present on the row with
// a non-null value. Presence is distinct from non-emptiness: an empty
// string still counts as present.
func (r Row) Has(aliases ...string) bool {
	for _, key := range aliases {
		if v, ok := r.lookup(key); ok && v != nil {
			return true
		}
	}
	return false
}

// String resolves the first alias whose value is non-null and non-empty,
// stringified. Numbers render without a trailing ".0" for integral values.
func (r Row) String(aliases ...string) string {
	for _, key := range aliases {
		v, ok := r.lookup(key)
		if !ok || v == nil {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// Number resolves the first alias that coerces to a number. Coercion
// failure yields 0, not an error.
func (r Row) Number(aliases ...string) float64 {
	for _, key := range aliases {
		v, ok := r.lookup(key)
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(n, "$"), ",", ""))
			if cleaned == "" {
				continue
			}
			if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return f
			}
		case bool:
			if n {
				return 1
			}
			return 0
		}
	}
	return 0
}

// Bool resolves the first alias carrying a truthy value. Strings follow the
// feed convention: "true"/"yes"/"1" are true, anything else false.
func (r Row) Bool(aliases ...string) bool {
	for _, key := range aliases {
		v, ok := r.lookup(key)
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "true", "yes", "1":
				return true
			case "false", "no", "0", "":
				return false
			}
		case float64:
			return b != 0
		}
	}
	return false
}

// Strings resolves the first alias carrying a list, coercing elements to
// strings and dropping empties.
func (r Row) Strings(aliases ...string) []string {
	for _, key := range aliases {
		v, ok := r.lookup(key)
		if !ok || v == nil {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
