package model

import (
	"fmt"
	"time"
)

// Code is an external key/value code attached to an entity, such as a
// ("gtfs_stop_code", "1234") pair carried over from the source feed.
type Code struct {
	Key   string
	Value string
}

// Coord is a WGS84 coordinate.
type Coord struct {
	Lon float64
	Lat float64
}

// RGB is a color encoded as three channels, serialized as "RRGGBB" hex.
type RGB struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// ParseRGB parses a "RRGGBB" hex string.
func ParseRGB(s string) (RGB, error) {
	var c RGB
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.Red, &c.Green, &c.Blue); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// String returns the "RRGGBB" hex form.
func (c RGB) String() string {
	return fmt.Sprintf("%02X%02X%02X", c.Red, c.Green, c.Blue)
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseRGB(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TimeOfDay is a number of seconds since midnight. Values beyond 24h
// are valid and represent times on the following day, as is usual for
// overnight services.
type TimeOfDay uint32

// ParseTimeOfDay parses a "HH:MM:SS" string. Hours may exceed 23.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec uint32
	if _, err := fmt.Sscanf(s, "%d:%2d:%2d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if m > 59 || sec > 59 {
		return 0, fmt.Errorf("invalid time %q: minutes and seconds must be < 60", s)
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// String returns the "HH:MM:SS" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, t/60%60, t%60)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is a civil date with day precision, in UTC.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the ISO "YYYY-MM-DD" form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
