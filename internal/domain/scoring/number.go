package scoring

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a numeric field that may be absent. It decodes from a JSON number
// or a numeric string; null and "" leave it unset. Anything else that is not
// numeric also leaves it unset, so a scale reports an undefined result, but
// the input is remembered and Invalid reports it for aggregates that must
// reject the write.
type Number struct {
	value   float64
	set     bool
	invalid string
}

// N returns a set Number.
func N(v float64) Number {
	return Number{value: v, set: true}
}

// Value returns the number and whether it was provided.
func (n Number) Value() (float64, bool) {
	return n.value, n.set
}

// IsSet reports whether the input was provided.
func (n Number) IsSet() bool {
	return n.set
}

// Invalid returns the raw input when it was present but not numeric.
func (n Number) Invalid() (string, bool) {
	return n.invalid, n.invalid != ""
}

// String formats a set value without trailing zeros, or "" when unset.
func (n Number) String() string {
	if !n.set {
		return ""
	}
	return formatNumber(n.value)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	input, raw := string(data), string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		input = strings.TrimSpace(s)
		if input == "" {
			return nil
		}
		// accept the pt-BR decimal comma ("37,8")
		raw = strings.Replace(input, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		n.invalid = input
		return nil
	}
	*n = N(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

// MarshalBSONValue stores Number as a BSON double, or null when unset.
func (n Number) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !n.set {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(n.value)
}

func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*n = Number{}
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*n = N(raw.Double())
	case bsontype.Int32:
		*n = N(float64(raw.Int32()))
	case bsontype.Int64:
		*n = N(float64(raw.Int64()))
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
