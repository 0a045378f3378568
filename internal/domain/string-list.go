package domain

import (
	"database/sql/driver"
	"encoding/json"
)

// StringList is a JSON array column. Reads never fail: NULL, malformed JSON or
// a non-array value all decode to an empty list.
type StringList []string

func (StringList) GormDataType() string {
	return "json"
}

func (l *StringList) Scan(value any) error {
	*l = decodeStringList(value)
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeStringList(value any) StringList {
	var raw []byte
	switch v := value.(type) {
	case []string:
		return append(StringList{}, v...)
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return StringList{}
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return StringList{}
	}
	return out
}
