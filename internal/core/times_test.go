package core

import (
	"testing"
	"time"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"two and a half hours", start.Add(150 * time.Minute), 150},
		{"rounds up half minutes", start.Add(90*time.Second + 45*time.Second), 2},
		{"end before start", start.Add(-time.Hour), 0},
		{"end equals start", start, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationMinutes(start, tt.end); got != tt.want {
				t.Errorf("DurationMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCourtFeeFor(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		rate    float64
		want    float64
	}{
		{"whole hours", 120, 100000, 200000},
		{"partial hour", 150, 100000, 250000},
		{"rounds to whole dong", 100, 100000, 166667},
		{"zero duration", 0, 100000, 0},
		{"zero rate", 90, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CourtFeeFor(tt.minutes, tt.rate); got != tt.want {
				t.Errorf("CourtFeeFor(%d, %v) = %v, want %v", tt.minutes, tt.rate, got, tt.want)
			}
		})
	}
}

func TestFormatDurationVN(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{150, "2 giờ 30 phút"},
		{120, "2 giờ"},
		{45, "45 phút"},
		{0, "0 phút"},
		{-10, "0 phút"},
	}
	for _, tt := range tests {
		if got := FormatDurationVN(tt.minutes); got != tt.want {
			t.Errorf("FormatDurationVN(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestCourtFeeDescription(t *testing.T) {
	got := CourtFeeDescription(120, 100000)
	want := "Sân 2 giờ (100.000 ₫/giờ)"
	if got != want {
		t.Errorf("CourtFeeDescription() = %q, want %q", got, want)
	}
}
