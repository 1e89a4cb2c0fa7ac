package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of references stored as a JSON array in a
// text column. An empty list is stored as NULL.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("string list: unsupported source %T", src)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		// Legacy rows may hold garbage; treat them as no images.
		*l = nil
		return nil
	}
	*l = out
	return nil
}
