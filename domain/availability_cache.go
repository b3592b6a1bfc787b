package domain

import (
	"context"
	"time"
)

// AvailabilityCache holds recently computed slot lists per
// (court, date, duration). Entries are short lived and dropped whenever a
// booking on the court/day is created or cancelled.
type AvailabilityCache interface {
	Get(ctx context.Context, courtId string, date time.Time, durationMinutes int) ([]int, error)
	Post(ctx context.Context, courtId string, date time.Time, durationMinutes int, hours []int) error
	Invalidate(ctx context.Context, courtId string, date time.Time) error
}
