package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// The report tables are loaded from spreadsheets, so the same column may hold
// numbers, text or NULL depending on the import. These scanners accept all of
// them and coerce anything unusable to "absent" instead of failing the query.

// looseNumber is a numeric column; Value is nil when NULL or non-numeric.
type looseNumber struct {
	Value *float64
}

func (n *looseNumber) Scan(src interface{}) error {
	n.Value = nil
	switch v := src.(type) {
	case nil:
	case float64:
		n.Value = finite(v)
	case float32:
		n.Value = finite(float64(v))
	case int64:
		f := float64(v)
		n.Value = &f
	case int32:
		f := float64(v)
		n.Value = &f
	case int:
		f := float64(v)
		n.Value = &f
	case []byte:
		n.Value = parseNumber(string(v))
	case string:
		n.Value = parseNumber(v)
	}
	return nil
}

func parseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return finite(value)
}

func finite(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// looseText is a text column; NULL becomes "".
type looseText string

func (t *looseText) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = looseText(strings.TrimSpace(v))
	case []byte:
		*t = looseText(strings.TrimSpace(string(v)))
	case time.Time:
		*t = looseText(v.Format("15:04"))
	default:
		*t = looseText(strings.TrimSpace(fmt.Sprint(v)))
	}
	return nil
}

func (t looseText) String() string {
	return string(t)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// sourceDate is the operation date column. DATE columns go through
// datatypes.Date; text columns are parsed with the layouts above.
type sourceDate struct {
	datatypes.Date
	Valid bool
}

func (d *sourceDate) Scan(src interface{}) error {
	d.Valid = false
	d.Date = datatypes.Date{}
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		if err := d.Date.Scan(src); err != nil {
			return nil
		}
		d.Valid = !d.Time().IsZero()
		return nil
	}
}

func (d *sourceDate) parse(raw string) error {
	if parsed, ok := parseTime(raw); ok {
		d.Date = datatypes.Date(parsed)
		d.Valid = true
	}
	return nil
}

func (d sourceDate) Time() time.Time {
	return time.Time(d.Date)
}

// sourceTime is the alcohol test timestamp column.
type sourceTime struct {
	Time  time.Time
	Valid bool
}

func (t *sourceTime) Scan(src interface{}) error {
	t.Time, t.Valid = time.Time{}, false
	switch v := src.(type) {
	case time.Time:
		t.Time, t.Valid = v, true
	case string:
		t.Time, t.Valid = parseTime(v)
	case []byte:
		t.Time, t.Valid = parseTime(string(v))
	}
	return nil
}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
