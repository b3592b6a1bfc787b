package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestSlotEndHour(t *testing.T) {
	if got := SlotEndHour(14, 90); got != 15.5 {
		t.Errorf("SlotEndHour(14, 90) = %v, want 15.5", got)
	}
	if got := SlotEndHour(7, 60); got != 8.0 {
		t.Errorf("SlotEndHour(7, 60) = %v, want 8", got)
	}
}

func TestFitsWithinHours(t *testing.T) {
	// A slot ending exactly at closing is still bookable.
	if !FitsWithinHours(21, 60, 22) {
		t.Error("60 minutes at 21 should fit before a 22:00 close")
	}
	if !FitsWithinHours(20, 120, 22) {
		t.Error("120 minutes at 20 should fit before a 22:00 close")
	}
	if FitsWithinHours(21, 90, 22) {
		t.Error("90 minutes at 21 runs past a 22:00 close")
	}
	if FitsWithinHours(21, 120, 22) {
		t.Error("120 minutes at 21 runs past a 22:00 close")
	}
}

func TestOverlaps(t *testing.T) {
	booked := NewBookedSlot(14, 90) // occupies [14, 15.5)

	cases := []struct {
		name     string
		start    int
		duration int
		want     bool
	}{
		{"same start", 14, 90, true},
		{"starts inside", 15, 60, true},
		{"covers booked", 13, 180, true},
		{"ends at booked start", 13, 60, false},
		{"starts after fractional end", 16, 60, false},
		{"half hour inside tail", 15, 30, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.start, tc.duration, booked); got != tc.want {
				t.Errorf("Overlaps(%d, %d, [14,15.5)) = %v, want %v", tc.start, tc.duration, got, tc.want)
			}
		})
	}
}

func TestAvailableStartHours(t *testing.T) {
	// Court open 7-22 with a 90 minute booking at 14. A 90 minute request
	// loses 13 (runs into the booking), 14 and 15 (inside it), and 21
	// (would end past closing).
	booked := []BookedSlot{NewBookedSlot(14, 90)}

	got := AvailableStartHours(7, 22, booked, 90)
	want := []int{7, 8, 9, 10, 11, 12, 16, 17, 18, 19, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableStartHours = %v, want %v", got, want)
	}
}

func TestAvailableStartHoursNoBookings(t *testing.T) {
	got := AvailableStartHours(7, 10, nil, 60)
	want := []int{7, 8, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableStartHours = %v, want %v", got, want)
	}
}

func TestAvailableStartHoursFullyBooked(t *testing.T) {
	booked := []BookedSlot{NewBookedSlot(7, 180)}

	got := AvailableStartHours(7, 10, booked, 30)
	if len(got) != 0 {
		t.Errorf("expected no availability on a fully booked day, got %v", got)
	}
	if got == nil {
		t.Error("empty availability must be an empty list, not nil")
	}
}

func TestAvailableStartHoursIsReadOnly(t *testing.T) {
	booked := []BookedSlot{NewBookedSlot(9, 60)}

	first := AvailableStartHours(7, 12, booked, 60)
	second := AvailableStartHours(7, 12, booked, 60)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls diverged: %v then %v", first, second)
	}
}

func TestNormalizeDate(t *testing.T) {
	// A day-labeled date lands on that calendar day in the facility zone,
	// west or east of UTC alike.
	date := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	day := NormalizeDate(date, "America/New_York")
	if day.Day() != 15 || day.Hour() != 0 {
		t.Errorf("NormalizeDate = %v, want New York midnight on the 15th", day)
	}

	day = NormalizeDate(date, "Europe/Madrid")
	if day.Day() != 15 || day.Hour() != 0 {
		t.Errorf("NormalizeDate = %v, want Madrid midnight on the 15th", day)
	}

	// Unknown zones fall back to UTC.
	day = NormalizeDate(date, "Nowhere/Invalid")
	if !day.Equal(date) {
		t.Errorf("NormalizeDate with bad zone = %v, want UTC midnight on the 15th", day)
	}
}

func TestDayBounds(t *testing.T) {
	date := time.Date(2026, time.July, 3, 15, 0, 0, 0, time.UTC)

	start, end := DayBounds(date, "")
	if !end.Equal(start.Add(24 * time.Hour)) {
		t.Errorf("DayBounds window is %v, want 24h", end.Sub(start))
	}
	if start.Hour() != 0 || start.Day() != 3 {
		t.Errorf("DayBounds start = %v, want midnight on the 3rd", start)
	}
}
