package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dayspend/internal/cli"
	"dayspend/internal/dates"
	"dayspend/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagSalaryAmount string
	flagSalarySecond string
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Show the salary schedule or update amounts",
	RunE:  runSalary,
}

func init() {
	salaryCmd.Flags().StringVar(&flagSalaryAmount, "amount", "", "Update the salary amount")
	salaryCmd.Flags().StringVar(&flagSalarySecond, "second", "", "Update the second salary amount (biweekly only)")
	rootCmd.AddCommand(salaryCmd)
}

func runSalary(_ *cobra.Command, _ []string) error {
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

	if flagSalaryAmount != "" || flagSalarySecond != "" {
		si := eng.Snapshot().SalaryInfo
		amount := si.Amount
		if flagSalaryAmount != "" {
			amount, err = strconv.ParseFloat(strings.ReplaceAll(flagSalaryAmount, ",", "."), 64)
			if err != nil || amount < 0 {
				return fmt.Errorf("invalid amount %q", flagSalaryAmount)
			}
		}
		// The second amount stays untouched unless explicitly given.
		var second *float64
		if flagSalarySecond != "" {
			v, err := strconv.ParseFloat(strings.ReplaceAll(flagSalarySecond, ",", "."), 64)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid second amount %q", flagSalarySecond)
			}
			second = &v
		}
		eng.UpdateSalaryAmount(amount, second)
		reportSaveError(eng)
		fmt.Println("  Salary updated.")
	}

	snap := eng.Snapshot()
	si := snap.SalaryInfo

	freq := "Monthly"
	if si.Frequency == model.FrequencyBiweekly {
		freq = "Every two weeks"
	}

	rows := [][]string{
		{"Frequency", freq},
		{"Amount", cli.FormatCurrency(si.Amount, lang)},
		{"Next payday", fmt.Sprintf("%s (%s)", cli.FormatDate(si.NextDate), cli.FormatDays(dates.DaysRemaining(time.Now(), si.NextDate)))},
	}
	if si.HasSecondSalary() {
		rows = append(rows,
			[]string{"Second amount", cli.FormatCurrency(*si.SecondAmount, lang)},
			[]string{"Second payment", cli.FormatDate(*si.SecondDate)},
		)
	}
	if snap.LastSalaryProcessed != nil {
		rows = append(rows, []string{"Last credited", cli.FormatDate(*snap.LastSalaryProcessed)})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Salary schedule",
		Headers: []string{"", ""},
		Rows:    rows,
	}))
	fmt.Println()

	upcoming := dates.FutureSalaryDates(si.NextDate, si.Frequency, 6)
	urows := make([][]string, 0, len(upcoming))
	for _, d := range upcoming {
		urows = append(urows, []string{cli.FormatDate(d), cli.FormatDays(dates.DaysRemaining(time.Now(), d))})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Upcoming paydays",
		Headers: []string{"Date", "In"},
		Rows:    urows,
	}))
	fmt.Println()

	return nil
}
