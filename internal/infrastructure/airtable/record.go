package airtable

import (
	"fmt"
	"strconv"

	"github.com/beaverpumice/scalehouse-api/pkg/money"
)

// Field accessors. The store returns lookup fields as single-element arrays,
// numbers as float64, and currency either as a number or as a formatted string
// ("$1,350.75"). Every accessor takes an ordered list of candidate keys and
// returns the first usable value, which keeps the fallback chains declarative
// and testable (see fields.go for the chains themselves).

// value returns the raw value for key, unwrapping single-element lookup
// arrays.
func (r *Record) value(key string) interface{} {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return nil
	}
	if arr, ok := v.([]interface{}); ok {
		if len(arr) == 0 {
			return nil
		}
		return arr[0]
	}
	return v
}

// Str returns the first non-empty string among the candidate keys.
func (r *Record) Str(keys ...string) string {
	for _, key := range keys {
		switch v := r.value(key).(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Float returns the first parseable number among the candidate keys, or 0.
func (r *Record) Float(keys ...string) float64 {
	for _, key := range keys {
		switch v := r.value(key).(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// Int returns the first parseable integer among the candidate keys, or 0.
func (r *Record) Int(keys ...string) int {
	return int(r.Float(keys...))
}

// Bool returns the first boolean among the candidate keys, or false.
func (r *Record) Bool(keys ...string) bool {
	for _, key := range keys {
		if v, ok := r.value(key).(bool); ok {
			return v
		}
	}
	return false
}

// Currency returns the first set currency value among the candidate keys.
// Values are parsed with the zero-as-absent rule: a field holding exactly
// zero reads as nil, same as a missing field.
func (r *Record) Currency(keys ...string) *float64 {
	for _, key := range keys {
		switch v := r.value(key).(type) {
		case float64:
			if v != 0 {
				value := v
				return &value
			}
		case string:
			if parsed := money.ParseCurrency(v); parsed != nil {
				return parsed
			}
		}
	}
	return nil
}

// StrList returns the string slice stored under key; lookup fields holding
// linked record IDs arrive this way.
func (r *Record) StrList(key string) []string {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// recordIDFormula builds the OR(RECORD_ID()=...) filter used for batched
// fetches by explicit ID list.
func recordIDFormula(ids []string) string {
	if len(ids) == 1 {
		return fmt.Sprintf("RECORD_ID()='%s'", ids[0])
	}
	formula := "OR("
	for i, id := range ids {
		if i > 0 {
			formula += ","
		}
		formula += fmt.Sprintf("RECORD_ID()='%s'", id)
	}
	return formula + ")"
}
