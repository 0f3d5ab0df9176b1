package core

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"plain integer", "300000", 300000, false},
		{"dot grouping", "300.000", 300000, false},
		{"comma grouping", "300,000", 300000, false},
		{"mixed grouping", "1.300,000", 1300000, false},
		{"with spaces", "  90000 ", 90000, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"negative", "-5000", 0, true},
		{"plus sign", "+5000", 0, true},
		{"letters", "12a00", 0, true},
		{"only separators", "...", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0 ₫"},
		{500, "500 ₫"},
		{1000, "1.000 ₫"},
		{90000, "90.000 ₫"},
		{390000, "390.000 ₫"},
		{1234567, "1.234.567 ₫"},
		{145000.4, "145.000 ₫"},
		{145000.6, "145.001 ₫"},
		{-50000, "-50.000 ₫"},
	}

	for _, tt := range tests {
		if got := FormatVND(tt.amount); got != tt.want {
			t.Errorf("FormatVND(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
