package domain

import "math"

// Price is hours times hourly rate, kept at full precision. Rounding is a
// display concern only.
func Price(durationMinutes int, pricePerHour float64) float64 {
	return float64(durationMinutes) / 60.0 * pricePerHour
}

// DurationMinutes recovers the booked duration from a stored price.
func DurationMinutes(price float64, pricePerHour float64) int {
	if pricePerHour == 0 {
		return 0
	}
	return int(math.Round(price / pricePerHour * 60.0))
}

func DisplayPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
