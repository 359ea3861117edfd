package domain

import (
	"time"

	"github.com/google/uuid"
)

// generateID returns a random UUID for queue items, which have no natural
// key. History entries and timers use TimestampID instead.
func generateID() string {
	return uuid.New().String()
}

// TimestampID returns now in Unix milliseconds, moved forward one
// millisecond at a time until taken reports it free.
func TimestampID(now time.Time, taken func(int64) bool) int64 {
	id := now.UnixMilli()
	for taken != nil && taken(id) {
		id++
	}
	return id
}
