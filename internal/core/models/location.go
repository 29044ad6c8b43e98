package models

import "strings"

// Location is a deduplicated place a session happened at. UsageCount
// tracks how many sessions reference it.
type Location struct {
	ID         int64
	Name       string
	City       string
	State      string
	Country    string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
	UsageCount int
}

// Key is the exact-match composite dedup key: two locations with the
// same (name, city, state) are the same place.
func (l *Location) Key() string {
	return LocationKey(l.Name, l.City, l.State)
}

// LocationKey builds the composite key used for deduplication.
func LocationKey(name, city, state string) string {
	parts := []string{name, city, state}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

// DisplayName combines the location/city/state columns into one display
// string, preferring the bare location name when present.
func DisplayName(name, city, state string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	var parts []string
	for _, p := range []string{city, state} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HasCoordinates reports whether the location has been geocoded.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
