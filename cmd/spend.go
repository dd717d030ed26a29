package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dayspend/internal/budget"
	"dayspend/internal/cli"
	"dayspend/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagSpendCategory string
	flagSpendDate     string
)

var spendCmd = &cobra.Command{
	Use:   "spend <amount> [description]",
	Short: "Record a spending transaction",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSpend,
}

func init() {
	spendCmd.Flags().StringVarP(&flagSpendCategory, "category", "c", "other", "Spending category")
	spendCmd.Flags().StringVar(&flagSpendDate, "date", "", "Date of the spend (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(spendCmd)
}

func runSpend(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", "."), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %s", args[0])
	}

	if !model.ValidCategoryID(flagSpendCategory) {
		var ids []string
		for _, c := range model.Categories {
			ids = append(ids, c.ID)
		}
		return fmt.Errorf("unknown category %q (one of: %s)", flagSpendCategory, strings.Join(ids, ", "))
	}

	var date time.Time
	if flagSpendDate != "" {
		date, err = time.ParseInLocation("2006-01-02", flagSpendDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", flagSpendDate, err)
		}
	}

	description := strings.Join(args[1:], " ")

	eng, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := requireSetup(eng); err != nil {
		return err
	}
	syncSalary(eng)

	eng.AddTransaction(amount, description, flagSpendCategory, date)
	reportSaveError(eng)

	lang := cfg.General.Language
	snap := eng.Snapshot()
	sum := budget.Summarize(time.Now(), snap)

	fmt.Printf("  Recorded %s", cli.FormatCurrency(amount, lang))
	if description != "" {
		fmt.Printf(" for %q", description)
	}
	fmt.Println()
	fmt.Printf("  Spent today %s of %s — balance %s\n",
		cli.FormatCurrency(sum.TodaySpending, lang),
		cli.FormatCurrency(sum.DailyBudget, lang),
		cli.FormatCurrency(snap.CurrentBalance, lang),
	)

	return nil
}
