package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cast"
)

// ID is a nullable integer identifier. In JSON it accepts numbers and numeric
// strings; an absent or null id is stored and rendered as NULL.
type ID struct {
	Int64 int64
	Valid bool
}

func NewID(v int64) ID {
	return ID{Int64: v, Valid: true}
}

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case json.Number:
		raw = v.String()
	case string:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidID, string(b))
	}

	v, err := cast.ToInt64E(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, string(b))
	}

	*id = NewID(v)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if !id.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.Int64, 10)), nil
}

func (id ID) Value() (driver.Value, error) {
	if !id.Valid {
		return nil, nil
	}
	return id.Int64, nil
}

func (id *ID) Scan(src interface{}) error {
	if src == nil {
		*id = ID{}
		return nil
	}

	v, err := cast.ToInt64E(src)
	if err != nil {
		if b, ok := src.([]byte); ok {
			v, err = cast.ToInt64E(string(b))
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidID, src)
		}
	}

	*id = NewID(v)
	return nil
}
