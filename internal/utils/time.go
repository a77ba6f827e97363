package util

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Epoch is a second-resolution instant rendered as unix seconds, the way
// Moodle stores every date field.
type Epoch struct {
	time.Time
}

func NewEpoch(t time.Time) Epoch {
	return Epoch{Time: t.UTC().Truncate(time.Second)}
}

func EpochFromUnix(sec int64) Epoch {
	return Epoch{Time: time.Unix(sec, 0).UTC()}
}

func (e Epoch) String() string {
	if e.IsZero() {
		return "0"
	}
	return strconv.FormatInt(e.Unix(), 10)
}

func (e *Epoch) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid epoch %q: %w", s, err)
	}
	*e = EpochFromUnix(sec)
	return nil
}

func (e Epoch) MarshalJSON() ([]byte, error) {
	if e.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(e.String()), nil
}

func (e Epoch) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Epoch) UnmarshalText(b []byte) error {
	return e.scanString(string(b))
}

func (e Epoch) Equal(other Epoch) bool {
	return e.Time.Equal(other.Time)
}

func (e Epoch) Value() (driver.Value, error) {
	if e.IsZero() {
		return nil, nil
	}
	return e.Unix(), nil
}

func (e *Epoch) Scan(value interface{}) error {
	if value == nil {
		e.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case int64:
		*e = EpochFromUnix(v)
		return nil
	case time.Time:
		*e = NewEpoch(v)
		return nil
	case []byte:
		return e.scanString(string(v))
	case string:
		return e.scanString(v)
	default:
		return fmt.Errorf("cannot scan type %T into Epoch", value)
	}
}

func (e *Epoch) scanString(s string) error {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid epoch %q: %w", s, err)
	}
	*e = EpochFromUnix(sec)
	return nil
}
