package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Labels is stored as a JSON array in a single TEXT column.
type Labels []string

func (l Labels) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

func (l *Labels) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("labels: unsupported source type %T", src)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(data, l)
}
