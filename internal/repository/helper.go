package repository

import (
	"fmt"
	"time"
)

// timeFormats are the layouts stored columns arrive in: plain dates,
// RFC3339 from application writes, and SQLite's CURRENT_TIMESTAMP default.
var timeFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTime parses a DATE or DATETIME column value into a UTC time.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
