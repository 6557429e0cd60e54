package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Text is a nullable text column. In JSON it accepts any scalar: numbers and
// booleans are stored as their literal text. Objects and arrays are rejected.
type Text struct {
	String string
	Valid  bool
}

func NewText(s string) Text {
	return Text{String: s, Valid: true}
}

func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Text{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string, bool:
	case json.Number:
		raw = v.String()
	default:
		return fmt.Errorf("%w: %s", ErrInvalidText, string(b))
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidText, string(b))
	}

	*t = NewText(s)
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String)
}

func (t Text) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.String, nil
}

func (t *Text) Scan(src interface{}) error {
	if src == nil {
		*t = Text{}
		return nil
	}

	s, err := cast.ToStringE(src)
	if err != nil {
		return fmt.Errorf("%w: %T", ErrInvalidText, src)
	}

	*t = NewText(s)
	return nil
}
