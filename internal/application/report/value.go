package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ecotreat/portal-api/internal/domain"
)

// Value is one calculator value: a number or a string. Anything else in the
// payload (bool, array, object) is rejected at the boundary.
type Value struct {
	num   float64
	str   string
	isNum bool
	set   bool
}

// Num builds a numeric value. Used by tests and in-process callers.
func Num(f float64) Value { return Value{num: f, isNum: true, set: true} }

// Str builds a string value.
func Str(s string) Value { return Value{str: s, set: true} }

// Number returns the numeric value when present.
func (v Value) Number() (float64, bool) { return v.num, v.set && v.isNum }

// Text returns the string value when present.
func (v Value) Text() (string, bool) { return v.str, v.set && !v.isNum }

// IsSet reports whether the value carries anything at all.
func (v Value) IsSet() bool { return v.set }

// UnmarshalJSON accepts a JSON number or string; null leaves the value unset.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = Value{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: malformed string value", domain.ErrInvalidInput)
		}
		*v = Str(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("%w: calculator values must be numbers or strings", domain.ErrInvalidInput)
	}
	*v = Num(f)
	return nil
}

// MarshalJSON mirrors UnmarshalJSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case !v.set:
		return []byte("null"), nil
	case v.isNum:
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.str)
	}
}

// CalculatorResult is the external input to the report builder: named input
// parameters plus an optional nested mapping of computed results. The
// calculation itself happens outside this core; the builder only formats what
// it is given. One instance lives for a single export request.
type CalculatorResult struct {
	Params  map[string]Value
	Results map[string]Value
}

// HasResults reports whether the calculator produced derived values.
func (r CalculatorResult) HasResults() bool { return len(r.Results) > 0 }

// UnmarshalJSON reads the wire shape used by the calculators: a flat object
// of input parameters with a reserved nested "results" object.
func (r *CalculatorResult) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: calculator payload must be an object", domain.ErrInvalidInput)
	}
	r.Params = make(map[string]Value, len(raw))
	r.Results = nil
	for key, msg := range raw {
		if key == "results" {
			if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
				continue
			}
			var results map[string]Value
			if err := json.Unmarshal(msg, &results); err != nil {
				return fmt.Errorf("%w: results must be an object of values", domain.ErrInvalidInput)
			}
			r.Results = results
			continue
		}
		var v Value
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("parameter %q: %w", key, err)
		}
		r.Params[key] = v
	}
	return nil
}
