package cmd

import (
	"fmt"
	"time"

	"dayspend/internal/budget"
	"dayspend/internal/cli"
	"dayspend/internal/dates"
	"dayspend/internal/model"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the daily budget and balances",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	eng, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := requireSetup(eng); err != nil {
		return err
	}
	syncSalary(eng)

	lang := cfg.General.Language
	now := time.Now()
	snap := eng.Snapshot()
	sum := budget.Summarize(now, snap)
	si := snap.SalaryInfo

	fmt.Println()
	fmt.Println(cli.RenderTitle("DAYSPEND"))
	fmt.Println()

	fmt.Printf("  Today you can spend  %s\n", cli.FormatCurrency(sum.DailyBudget, lang))
	fmt.Printf("  Spent today          %s\n", cli.FormatCurrency(sum.TodaySpending, lang))
	fmt.Printf("  %s\n", cli.RenderBudgetGauge(sum.TodaySpending, sum.DailyBudget, 30))
	fmt.Println()

	rows := [][]string{
		{"Balance", cli.FormatCurrency(snap.CurrentBalance, lang)},
		{"Target reserve", cli.FormatCurrency(snap.TargetBalance, lang)},
		{"After upcoming bills", cli.FormatCurrency(sum.RemainingBalance, lang)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Balances",
		Headers: []string{"", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()

	if si != nil {
		rows = [][]string{
			{"Next payday", fmt.Sprintf("%s (%s)", cli.FormatDate(si.NextDate), cli.FormatDays(sum.DaysRemaining))},
			{"Amount", cli.FormatCurrency(si.Amount, lang)},
		}
		if si.HasSecondSalary() {
			rows = append(rows,
				[]string{"Second payment", cli.FormatDate(*si.SecondDate)},
				[]string{"Second amount", cli.FormatCurrency(*si.SecondAmount, lang)},
			)
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Salary",
			Headers: []string{"", ""},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if byCat := budget.SpendingByCategory(snap.Transactions); len(byCat) > 0 {
		fmt.Printf("  Spending by category\n")
		fmt.Print(cli.RenderCategoryBars(byCat, lang, 24))
		fmt.Println()
	}

	if spark := dailySpendingSeries(now, snap, 14); spark != "" {
		fmt.Printf("  Last 14 days  %s\n", spark)
		fmt.Println()
	}

	reportSaveError(eng)
	return nil
}

// dailySpendingSeries renders per-day spending totals for the trailing n
// days as a sparkline, oldest first. Empty when there is nothing to show.
func dailySpendingSeries(now time.Time, snap model.Snapshot, n int) string {
	totals := make([]float64, n)
	any := false
	start := dates.StartOfDay(now).AddDate(0, 0, -(n - 1))
	for _, tx := range snap.Transactions {
		day := dates.StartOfDay(tx.Date)
		offset := int(day.Sub(start).Hours() / 24)
		if offset < 0 || offset >= n {
			continue
		}
		totals[offset] += tx.Amount
		any = true
	}
	if !any {
		return ""
	}
	return cli.RenderSparkline(totals)
}
