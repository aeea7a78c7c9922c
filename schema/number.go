package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a lenient numeric feed value.
//
// A JSON null or a missing field leaves the number unset. Numbers and numeric strings
// are parsed; booleans become 1 or 0; anything else is set to 0 so that a malformed
// snapshot degrades the display instead of failing the load.
type Number struct {
	Value float64
	Set   bool
}

// Num returns a set Number.
func Num(v float64) Number {
	return Number{Value: v, Set: true}
}

// Float returns the value, or 0 when unset.
func (n Number) Float() float64 {
	if !n.Set {
		return 0
	}
	return n.Value
}

// Or returns the value when set, otherwise the fallback.
func (n Number) Or(fallback float64) float64 {
	if !n.Set {
		return fallback
	}
	return n.Value
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	*n = Number{Set: true}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n.Value = parseFinite(s)
	case 't':
		n.Value = 1
	case 'f', '{', '[':
		// non-numeric, stays 0
	default:
		n.Value = parseFinite(string(data))
	}
	return nil
}

// parseFinite parses s as a float. NaN, infinities and unparsable text become 0.
func parseFinite(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Text is a lenient string feed value that also accepts numbers and booleans.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*t = ""
		return nil
	}
	*t = Text(data)
	return nil
}

// String returns the underlying string.
func (t Text) String() string {
	return string(t)
}
