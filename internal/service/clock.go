package service

import "time"

// nowDate returns the current UTC time truncated to the day, used for
// date-only lifecycle stamps.
func nowDate() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
