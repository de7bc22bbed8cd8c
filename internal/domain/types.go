package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is stored as a JSON array so it works the same on postgres and sqlite.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Contains reports whether the list holds item (exact match).
func (s StringList) Contains(item string) bool {
	for _, v := range s {
		if v == item {
			return true
		}
	}
	return false
}
