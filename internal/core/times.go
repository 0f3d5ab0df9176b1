package core

import (
	"fmt"
	"math"
	"time"
)

// DurationMinutes returns the whole minutes between start and end, rounded.
// Returns 0 when end is not after start.
func DurationMinutes(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(math.Round(end.Sub(start).Minutes()))
}

// CourtFeeFor computes the suggested court fee for a played duration at an
// hourly rate, rounded to whole đồng.
func CourtFeeFor(durationMinutes int, ratePerHour float64) float64 {
	if durationMinutes <= 0 || ratePerHour <= 0 {
		return 0
	}
	hours := float64(durationMinutes) / 60.0
	return math.Round(ratePerHour * hours)
}

// FormatDurationVN renders a minute count as Vietnamese text, e.g.
// "2 giờ 30 phút" or "45 phút".
func FormatDurationVN(minutes int) string {
	if minutes <= 0 {
		return "0 phút"
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d giờ %d phút", h, m)
	case h > 0:
		return fmt.Sprintf("%d giờ", h)
	default:
		return fmt.Sprintf("%d phút", m)
	}
}

// CourtFeeDescription builds the auto-filled description for a suggested
// court-fee expense, e.g. "Sân 2 giờ (100.000 ₫/giờ)".
func CourtFeeDescription(durationMinutes int, ratePerHour float64) string {
	return fmt.Sprintf("Sân %s (%s/giờ)", FormatDurationVN(durationMinutes), FormatVND(ratePerHour))
}
