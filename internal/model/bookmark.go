package model

import (
	"strconv"
	"time"
)

// Bookmark represents a saved URI owned by exactly one account.
// The owner is set at creation and never changes.
type Bookmark struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"-"`
	OwnerUsername string    `json:"-"`
	URI           string    `json:"uri"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// parseUnix parses a Unix timestamp string into a time.Time.
func parseUnix(s string) (time.Time, error) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0), nil
}

// formatUnix renders a time.Time as a Unix timestamp string.
func formatUnix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
