package cli

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		lang   string
		want   string
	}{
		{1234.56, "en", "$1,234.56"},
		{1234.56, "no", "1 234,56 kr"},
		{0, "en", "$0.00"},
		{0, "no", "0,00 kr"},
		{-987.5, "en", "-$987.50"},
		{-987.5, "no", "-987,50 kr"},
		{1000000, "en", "$1,000,000.00"},
		{1000000, "no", "1 000 000,00 kr"},
		{19.999, "en", "$20.00"}, // cent rounding
		{42, "fr", "$42.00"},     // unknown language falls back to en
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.amount, tt.lang); got != tt.want {
			t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.amount, tt.lang, got, tt.want)
		}
	}
}

func TestFormatDates(t *testing.T) {
	d := time.Date(2024, 6, 5, 15, 4, 5, 0, time.UTC)

	if got := FormatDate(d); got != "Jun 5, 2024" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatShortDate(d); got != "Jun 5" {
		t.Errorf("FormatShortDate = %q", got)
	}
}

func TestFormatDays(t *testing.T) {
	if got := FormatDays(1); got != "1 day" {
		t.Errorf("FormatDays(1) = %q", got)
	}
	if got := FormatDays(12); got != "12 days" {
		t.Errorf("FormatDays(12) = %q", got)
	}
	if got := FormatDays(0); got != "0 days" {
		t.Errorf("FormatDays(0) = %q", got)
	}
}
