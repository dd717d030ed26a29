package tui

import (
	"fmt"
	"strings"
	"time"

	"dayspend/internal/budget"
	"dayspend/internal/cli"
	"dayspend/internal/dates"
	"dayspend/internal/model"
	"dayspend/internal/tui/components"
	"dayspend/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	lang := a.lang
	compact := cw < 100
	var b strings.Builder

	// Row 1: Metric cards
	payHint := ""
	if a.snap.SalaryInfo != nil {
		payHint = cli.FormatShortDate(a.snap.SalaryInfo.NextDate)
	}
	cards := []struct{ Label, Value, Hint string }{
		{"Daily budget", cli.FormatCurrency(s.DailyBudget, lang), fmt.Sprintf("over %d days", s.PeriodDays)},
		{"Spent today", cli.FormatCurrency(s.TodaySpending, lang), ""},
		{"Balance", cli.FormatCurrency(a.snap.CurrentBalance, lang), "target " + cli.FormatCurrency(a.snap.TargetBalance, lang)},
		{"Next payday", cli.FormatDays(s.DaysRemaining), payHint},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Today's budget consumption
	innerW := components.CardInnerWidth(cw)
	pct := 0.0
	if s.DailyBudget > 0 {
		pct = s.TodaySpending / s.DailyBudget
	} else if s.TodaySpending > 0 {
		pct = 1
	}
	barW := innerW - 14
	if barW > 60 {
		barW = 60
	}
	if barW < 10 {
		barW = 10
	}
	gauge := components.BudgetBar("Today", pct, 6, barW)
	left := s.DailyBudget - s.TodaySpending
	leftStyle := lipgloss.NewStyle().Foreground(t.Green)
	if left < 0 {
		leftStyle = lipgloss.NewStyle().Foreground(t.Red)
	}
	gauge += "\n" + lipgloss.NewStyle().Foreground(t.TextMuted).Render("       ") +
		leftStyle.Render(cli.FormatCurrency(left, lang)) +
		lipgloss.NewStyle().Foreground(t.TextDim).Render(" left today")
	b.WriteString(components.ContentCard("Daily Budget", gauge, cw))
	b.WriteString("\n")

	// Row 3: Category breakdown + period summary
	halves := components.LayoutRow(cw, 2)

	spending := budget.SpendingByCategory(a.snap.Transactions)
	catBody := "No spending recorded yet."
	if len(spending) > 0 {
		rows := make([]components.HBarRow, 0, len(spending))
		for _, cs := range spending {
			cat := model.CategoryByID(cs.CategoryID)
			rows = append(rows, components.HBarRow{
				Label:  cat.Icon + " " + cat.DisplayName(lang),
				Value:  cs.Total,
				Amount: cli.FormatCurrency(cs.Total, lang),
			})
		}
		catW := components.CardInnerWidth(halves[0])
		if compact {
			catW = innerW
		}
		catBody = components.HBarList(rows, catW)
	}

	periodBody := a.renderPeriodSummary()

	if compact {
		b.WriteString(components.ContentCard("Spending by Category", catBody, cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("This Period", periodBody, cw))
	} else {
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Spending by Category", catBody, halves[0]),
			components.ContentCard("This Period", periodBody, halves[1]),
		}))
	}
	b.WriteString("\n")

	// Row 4: Trailing two weeks of spending
	series := spendingSeries(time.Now(), a.snap.Transactions, 14)
	spark := components.Sparkline(series, t.Blue) +
		lipgloss.NewStyle().Foreground(t.TextDim).Render("  last 14 days")
	b.WriteString(components.ContentCard("Spending Trend", spark, cw))

	return b.String()
}

func (a App) renderPeriodSummary() string {
	t := theme.Active
	lang := a.lang

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var next *time.Time
	var second *float64
	if si := a.snap.SalaryInfo; si != nil {
		d := si.NextDate
		next = &d
		if si.HasSecondSalary() {
			second = si.SecondAmount
		}
	}

	remaining := budget.RemainingBalance(a.snap.CurrentBalance, a.snap.FixedExpenses, next, second)

	dueCount := 0
	dueTotal := 0.0
	for _, exp := range a.snap.FixedExpenses {
		if next != nil && exp.DueDate != nil && !exp.DueDate.Before(*next) {
			continue
		}
		dueCount++
		dueTotal += exp.Amount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		labelStyle.Render("Spendable after bills:"),
		valueStyle.Render(cli.FormatCurrency(remaining, lang)))
	fmt.Fprintf(&b, "%s %s\n",
		labelStyle.Render("Bills before payday:  "),
		valueStyle.Render(fmt.Sprintf("%d (%s)", dueCount, cli.FormatCurrency(dueTotal, lang))))
	fmt.Fprintf(&b, "%s %s",
		labelStyle.Render("Transactions:         "),
		valueStyle.Render(fmt.Sprintf("%d", len(a.snap.Transactions))))
	if si := a.snap.SalaryInfo; si != nil && si.HasSecondSalary() && si.SecondDate != nil {
		fmt.Fprintf(&b, "\n%s %s",
			labelStyle.Render("Second payment:       "),
			valueStyle.Render(cli.FormatShortDate(*si.SecondDate)))
	}
	if si := a.snap.SalaryInfo; si != nil {
		upcoming := dates.FutureSalaryDates(si.NextDate, si.Frequency, 3)
		parts := make([]string, len(upcoming))
		for i, d := range upcoming {
			parts[i] = cli.FormatShortDate(d)
		}
		fmt.Fprintf(&b, "\n%s %s",
			labelStyle.Render("Upcoming paydays:     "),
			valueStyle.Render(strings.Join(parts, ", ")))
	}
	return b.String()
}

// spendingSeries returns total spending per day for the n trailing days,
// oldest first.
func spendingSeries(now time.Time, txs []model.Transaction, n int) []float64 {
	series := make([]float64, n)
	for _, tx := range txs {
		for i := 0; i < n; i++ {
			day := now.AddDate(0, 0, -(n - 1 - i))
			if dates.SameDay(tx.Date, day) {
				series[i] += tx.Amount
				break
			}
		}
	}
	return series
}
