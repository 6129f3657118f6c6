package domain

import (
	"bytes"
	"fmt"
	"time"
)

// Layouts accepted when parsing client-supplied dates, tried in order.
var flexDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// FlexDate is a date field that tolerates the formats browsers and
// spreadsheets actually send. It unmarshals from an ISO-8601 timestamp,
// a plain date, a US-style date or JSON null, and always marshals back
// as a plain "2006-01-02" date string.
type FlexDate struct {
	Time  time.Time
	Valid bool
}

// NewFlexDate wraps a time in a set FlexDate.
func NewFlexDate(t time.Time) FlexDate {
	return FlexDate{Time: t, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *FlexDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time, d.Valid = time.Time{}, false
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date value %s", data)
	}
	s := string(data[1 : len(data)-1])
	if s == "" {
		d.Time, d.Valid = time.Time{}, false
		return nil
	}
	for _, layout := range flexDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time, d.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("invalid date value %q", s)
}

// MarshalJSON implements json.Marshaler.
func (d FlexDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

// Ptr returns the wrapped time as a nullable pointer for persistence.
func (d FlexDate) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// FlexDateFrom converts a nullable persisted time back into a FlexDate.
func FlexDateFrom(t *time.Time) FlexDate {
	if t == nil {
		return FlexDate{}
	}
	return FlexDate{Time: *t, Valid: true}
}

// FormatDate renders a nullable time as "2006-01-02", or "" when nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
