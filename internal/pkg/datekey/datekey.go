package datekey

import "time"

// Layout is the canonical YYYY-MM-DD form of a day bucket key.
const Layout = "2006-01-02"

// FromTime derives the date key for t using the local wall-clock date
// components, not UTC, so a key never drifts into the neighbouring day
// across time zones.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the date key for the current local date.
func Today() string {
	return FromTime(time.Now())
}

// Valid reports whether key is a well-formed YYYY-MM-DD date.
func Valid(key string) bool {
	_, err := time.Parse(Layout, key)
	return err == nil && len(key) == len(Layout)
}

// AddDays shifts key by the given number of calendar days. The arithmetic is
// calendar based (AddDate), not a fixed number of hours, so it stays correct
// across DST boundaries.
func AddDays(key string, days int) (string, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(Layout), nil
}

// ValidTime reports whether s is a zero-padded HH:MM wall-clock time.
func ValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
