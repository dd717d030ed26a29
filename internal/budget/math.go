// Package budget implements the budget math and the stateful engine that
// owns the financial state.
package budget

import (
	"math"
	"time"

	"dayspend/internal/dates"
	"dayspend/internal/model"
)

// DailyBudgetInput carries everything the daily allowance calculation needs.
type DailyBudgetInput struct {
	Balance        float64
	TargetBalance  float64
	FixedExpenses  []model.FixedExpense
	DaysRemaining  int
	NextSalaryDate *time.Time
	Frequency      model.Frequency
	SecondAmount   *float64
	SecondDate     *time.Time
}

// DailyBudget returns the recommended per-day spending allowance for the
// rest of the current period, rounded to 2 decimals and floored at zero.
// A deficit never surfaces here; it shows up in the balance figures instead.
func DailyBudget(in DailyBudgetInput) float64 {
	due := dueExpensesTotal(in.FixedExpenses, in.NextSalaryDate)

	additional := 0.0
	periodDays := in.DaysRemaining
	if in.Frequency == model.FrequencyBiweekly && in.SecondAmount != nil && in.SecondDate != nil {
		// A second salary extends the horizon to the full 28-day period
		// and its amount counts as available funds.
		additional = *in.SecondAmount
		periodDays = dates.PeriodLengthDays(model.FrequencyBiweekly, true)
	}

	available := in.Balance - in.TargetBalance - due + additional

	if periodDays <= 0 {
		return 0
	}
	daily := round2(available / float64(periodDays))
	if daily < 0 {
		return 0
	}
	return daily
}

// TodaySpending sums transactions whose date falls on now's calendar day.
func TodaySpending(now time.Time, transactions []model.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		if dates.SameDay(tx.Date, now) {
			total += tx.Amount
		}
	}
	return total
}

// SpendingByCategory aggregates transaction amounts per category, in
// first-seen order. Sorting is left to presentation.
func SpendingByCategory(transactions []model.Transaction) []model.CategorySpend {
	totals := make(map[string]int) // category id -> index into result
	var result []model.CategorySpend
	for _, tx := range transactions {
		idx, seen := totals[tx.CategoryID]
		if !seen {
			idx = len(result)
			totals[tx.CategoryID] = idx
			result = append(result, model.CategorySpend{CategoryID: tx.CategoryID})
		}
		result[idx].Total += tx.Amount
	}
	return result
}

// RemainingBalance returns the point-in-time balance after the fixed
// expenses due before the next salary, plus any configured second salary.
// Independent of the daily-allowance period math.
func RemainingBalance(balance float64, fixedExpenses []model.FixedExpense, nextSalaryDate *time.Time, secondAmount *float64) float64 {
	due := dueExpensesTotal(fixedExpenses, nextSalaryDate)
	additional := 0.0
	if secondAmount != nil {
		additional = *secondAmount
	}
	return balance - due + additional
}

// dueExpensesTotal sums the expenses due before the next salary date.
// Expenses without a due date always count; with no next salary date every
// expense counts. Recomputed on every call, never cached.
func dueExpensesTotal(expenses []model.FixedExpense, nextSalaryDate *time.Time) float64 {
	var total float64
	for _, exp := range expenses {
		if nextSalaryDate != nil && exp.DueDate != nil && !exp.DueDate.Before(*nextSalaryDate) {
			continue
		}
		total += exp.Amount
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary holds the derived dashboard figures for one point in time.
type Summary struct {
	DailyBudget      float64
	TodaySpending    float64
	RemainingBalance float64
	DaysRemaining    int
	PeriodDays       int
}

// Summarize derives the display figures from a state snapshot. Callers pass
// the reference time so output is reproducible.
func Summarize(now time.Time, s model.Snapshot) Summary {
	var sum Summary
	sum.TodaySpending = TodaySpending(now, s.Transactions)

	si := s.SalaryInfo
	if si == nil {
		sum.RemainingBalance = RemainingBalance(s.CurrentBalance, s.FixedExpenses, nil, nil)
		return sum
	}

	next := si.NextDate
	sum.DaysRemaining = dates.DaysRemaining(now, next)
	sum.PeriodDays = dates.PeriodLengthDays(si.Frequency, si.HasSecondSalary())
	sum.DailyBudget = DailyBudget(DailyBudgetInput{
		Balance:        s.CurrentBalance,
		TargetBalance:  s.TargetBalance,
		FixedExpenses:  s.FixedExpenses,
		DaysRemaining:  sum.DaysRemaining,
		NextSalaryDate: &next,
		Frequency:      si.Frequency,
		SecondAmount:   si.SecondAmount,
		SecondDate:     si.SecondDate,
	})
	sum.RemainingBalance = RemainingBalance(s.CurrentBalance, s.FixedExpenses, &next, si.SecondAmount)
	return sum
}
