// Package dates provides pure date arithmetic for the salary cycle.
// All functions return new values and take the reference time explicitly;
// nothing here reads the wall clock or mutates its inputs.
package dates

import (
	"math"
	"time"

	"dayspend/internal/model"
)

// Hours per day used for day-difference math. DST shifts make some local
// days 23 or 25 hours; the ceiling in DaysRemaining absorbs that.
const hoursPerDay = 24

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NextSalaryDate returns the salary occurrence following from. Monthly adds
// one calendar month preserving the day of month (end-of-month overflow
// follows time.AddDate normalization); biweekly adds exactly 14 days.
func NextSalaryDate(from time.Time, freq model.Frequency) time.Time {
	if freq == model.FrequencyMonthly {
		return from.AddDate(0, 1, 0)
	}
	return from.AddDate(0, 0, 14)
}

// SecondSalaryDate returns the second biweekly occurrence, a fixed 14 days
// after the primary.
func SecondSalaryDate(primary time.Time) time.Time {
	return primary.AddDate(0, 0, 14)
}

// DaysRemaining returns the number of whole days from the start of now's
// day to the start of target's day, rounded up and clamped to zero. A
// target in the past yields 0, never a negative count.
func DaysRemaining(now, target time.Time) int {
	diff := StartOfDay(target).Sub(StartOfDay(now))
	days := int(math.Ceil(diff.Hours() / hoursPerDay))
	if days < 0 {
		return 0
	}
	return days
}

// PeriodLengthDays returns the nominal budget period length. Monthly periods
// are a fixed 30-day approximation regardless of the actual month. Biweekly
// periods are 14 days, or 28 when a second salary extends the horizon to
// cover both payments.
func PeriodLengthDays(freq model.Frequency, hasSecondSalary bool) int {
	if freq == model.FrequencyMonthly {
		return 30
	}
	if hasSecondSalary {
		return 28
	}
	return 14
}

// FutureSalaryDates returns count upcoming occurrences starting at first.
func FutureSalaryDates(first time.Time, freq model.Frequency, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	out := make([]time.Time, 0, count)
	d := first
	for i := 0; i < count; i++ {
		out = append(out, d)
		d = NextSalaryDate(d, freq)
	}
	return out
}
