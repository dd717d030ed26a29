package dates

import (
	"testing"
	"time"

	"dayspend/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestNextSalaryDate(t *testing.T) {
	tests := []struct {
		name string
		from string
		freq model.Frequency
		want string
	}{
		{"monthly mid-month", "2024-01-15", model.FrequencyMonthly, "2024-02-15"},
		{"monthly across year", "2024-12-15", model.FrequencyMonthly, "2025-01-15"},
		{"biweekly", "2024-01-15", model.FrequencyBiweekly, "2024-01-29"},
		{"biweekly across month", "2024-01-25", model.FrequencyBiweekly, "2024-02-08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSalaryDate(mustDate(t, tt.from), tt.freq)
			if !got.Equal(mustDate(t, tt.want)) {
				t.Fatalf("NextSalaryDate(%s, %s) = %s, want %s",
					tt.from, tt.freq, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestNextSalaryDate_DoesNotMutateInput(t *testing.T) {
	from := mustDate(t, "2024-01-15")
	orig := from
	_ = NextSalaryDate(from, model.FrequencyMonthly)
	if !from.Equal(orig) {
		t.Fatal("input date was modified")
	}
}

func TestDaysRemaining(t *testing.T) {
	now := mustDate(t, "2024-01-10").Add(13 * time.Hour) // time of day must not matter

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"future", "2024-01-15", 5},
		{"tomorrow", "2024-01-11", 1},
		{"today", "2024-01-10", 0},
		{"past clamps to zero", "2024-01-05", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysRemaining(now, mustDate(t, tt.target))
			if got != tt.want {
				t.Fatalf("DaysRemaining(%s) = %d, want %d", tt.target, got, tt.want)
			}
		})
	}
}

func TestPeriodLengthDays(t *testing.T) {
	tests := []struct {
		freq      model.Frequency
		hasSecond bool
		want      int
	}{
		{model.FrequencyMonthly, false, 30},
		{model.FrequencyMonthly, true, 30},
		{model.FrequencyBiweekly, false, 14},
		{model.FrequencyBiweekly, true, 28},
	}

	for _, tt := range tests {
		got := PeriodLengthDays(tt.freq, tt.hasSecond)
		if got != tt.want {
			t.Fatalf("PeriodLengthDays(%s, %v) = %d, want %d", tt.freq, tt.hasSecond, got, tt.want)
		}
	}
}

func TestFutureSalaryDates(t *testing.T) {
	got := FutureSalaryDates(mustDate(t, "2024-01-15"), model.FrequencyBiweekly, 3)
	want := []string{"2024-01-15", "2024-01-29", "2024-02-12"}
	if len(got) != len(want) {
		t.Fatalf("got %d dates, want %d", len(got), len(want))
	}
	for i, w := range want {
		if !got[i].Equal(mustDate(t, w)) {
			t.Fatalf("date[%d] = %s, want %s", i, got[i].Format("2006-01-02"), w)
		}
	}

	if FutureSalaryDates(mustDate(t, "2024-01-15"), model.FrequencyMonthly, 0) != nil {
		t.Fatal("count <= 0 should return nil")
	}
}

func TestStartOfDayAndSameDay(t *testing.T) {
	d := time.Date(2024, 3, 7, 18, 45, 12, 999, time.Local)
	start := StartOfDay(d)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Fatalf("StartOfDay left time-of-day: %s", start)
	}
	if !SameDay(d, start) {
		t.Fatal("SameDay(d, StartOfDay(d)) = false")
	}
	if SameDay(d, d.AddDate(0, 0, 1)) {
		t.Fatal("SameDay across days = true")
	}
}
