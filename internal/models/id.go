package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ID is a collection-unique integer identifier. Foreign data and older
// stored collections carry ids as JSON null, floats or numeric strings;
// unmarshaling tolerates all of those and maps anything unusable to zero,
// which the store's id repair then reassigns.
type ID int

// Valid reports whether the id is usable (assigned ids start at 1).
func (id ID) Valid() bool { return id >= 1 }

// Int returns the id as a plain int.
func (id ID) Int() int { return int(id) }

// MarshalJSON encodes the id as a JSON number.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(id))), nil
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*id = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*id = 0
		return nil
	}
	*id = ID(int(f))
	return nil
}

// ParseID converts a raw value decoded from JSON or a spreadsheet cell
// into an ID, returning 0 for anything non-numeric.
func ParseID(v any) ID {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return ID(int(t))
	case int:
		return ID(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return ID(int(f))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return ID(int(f))
	default:
		return 0
	}
}
