package domain

import "time"

// BookedSlot is an occupied interval on a court, in hours from midnight.
// End is fractional when the booking is not a whole number of hours
// (a 90 minute booking starting at 14 occupies [14, 15.5)).
type BookedSlot struct {
	Start int
	End   float64
}

func NewBookedSlot(startTime int, durationMinutes int) BookedSlot {
	return BookedSlot{
		Start: startTime,
		End:   SlotEndHour(startTime, durationMinutes),
	}
}

func SlotEndHour(start int, durationMinutes int) float64 {
	return float64(start) + float64(durationMinutes)/60.0
}

func FitsWithinHours(start int, durationMinutes int, closingHour int) bool {
	return SlotEndHour(start, durationMinutes) <= float64(closingHour)
}

// Overlaps is the half-open interval intersection test: a candidate slot
// collides with a booked one iff start < booked.End and end > booked.Start.
func Overlaps(start int, durationMinutes int, booked BookedSlot) bool {
	end := SlotEndHour(start, durationMinutes)
	return float64(start) < booked.End && end > float64(booked.Start)
}

// AvailableStartHours walks every whole hour of [opening, closing) and keeps
// the ones where a booking of the requested duration both fits before closing
// and collides with nothing already booked. The result is ascending and may
// be empty, which is a valid answer and not an error.
func AvailableStartHours(openingHour, closingHour int, booked []BookedSlot, durationMinutes int) []int {
	available := []int{}
	for hour := openingHour; hour < closingHour; hour++ {
		if !FitsWithinHours(hour, durationMinutes, closingHour) {
			continue
		}

		hasConflict := false
		for _, slot := range booked {
			if Overlaps(hour, durationMinutes, slot) {
				hasConflict = true
				break
			}
		}

		if !hasConflict {
			available = append(available, hour)
		}
	}
	return available
}

// DayBounds resolves a day-labeled date to that calendar day in the
// facility's configured time zone, so viewers in different zones see the
// same grid. The day is taken from the date's own calendar components, not
// from converting the instant, which would shift day-labeled input by one
// for facilities west of UTC. Unknown or empty zones fall back to UTC.
func DayBounds(date time.Time, timezone string) (time.Time, time.Time) {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour)
}

// NormalizeDate truncates a booking date to the facility-local midnight of
// the calendar day the date labels.
func NormalizeDate(date time.Time, timezone string) time.Time {
	start, _ := DayBounds(date, timezone)
	return start
}
