package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dayspend/internal/cli"
	"dayspend/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagExpenseDue      string
	flagExpenseName     string
	flagExpenseAmount   string
	flagExpenseClearDue bool
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"bills"},
	Short:   "Manage fixed recurring expenses",
	RunE:    runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a fixed expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpensesAdd,
}

var expensesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a fixed expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesUpdate,
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a fixed expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesDelete,
}

func init() {
	expensesAddCmd.Flags().StringVar(&flagExpenseDue, "due", "", "Due date (YYYY-MM-DD)")
	expensesUpdateCmd.Flags().StringVar(&flagExpenseName, "name", "", "New name")
	expensesUpdateCmd.Flags().StringVar(&flagExpenseAmount, "amount", "", "New amount")
	expensesUpdateCmd.Flags().StringVar(&flagExpenseDue, "due", "", "New due date (YYYY-MM-DD)")
	expensesUpdateCmd.Flags().BoolVar(&flagExpenseClearDue, "clear-due", false, "Remove the due date")

	expensesCmd.AddCommand(expensesAddCmd, expensesUpdateCmd, expensesDeleteCmd)
	rootCmd.AddCommand(expensesCmd)
}

func runExpensesList(_ *cobra.Command, _ []string) error {
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
	snap := eng.Snapshot()

	if len(snap.FixedExpenses) == 0 {
		fmt.Println("  No fixed expenses. Add one with `dayspend expenses add <name> <amount>`.")
		return nil
	}

	var nextSalary *time.Time
	if snap.SalaryInfo != nil {
		d := snap.SalaryInfo.NextDate
		nextSalary = &d
	}

	var dueTotal float64
	rows := make([][]string, 0, len(snap.FixedExpenses))
	for _, exp := range snap.FixedExpenses {
		due := "always"
		counted := true
		if exp.DueDate != nil {
			due = cli.FormatDate(*exp.DueDate)
			if nextSalary != nil && !exp.DueDate.Before(*nextSalary) {
				counted = false
			}
		}
		mark := "yes"
		if !counted {
			mark = "after payday"
		} else {
			dueTotal += exp.Amount
		}
		rows = append(rows, []string{
			exp.ID[:8],
			exp.Name,
			cli.FormatCurrency(exp.Amount, lang),
			due,
			mark,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Fixed expenses",
		Headers: []string{"ID", "Name", "Amount", "Due", "In budget"},
		Rows:    rows,
	}))
	fmt.Printf("  Due before next payday: %s\n", cli.FormatCurrency(dueTotal, lang))
	fmt.Println()

	return nil
}

func runExpensesAdd(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(args[1], ",", "."), 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("invalid amount %q (must be a positive number)", args[1])
	}

	var due *time.Time
	if flagExpenseDue != "" {
		d, err := time.ParseInLocation("2006-01-02", flagExpenseDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", flagExpenseDue, err)
		}
		due = &d
	}

	eng, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := requireSetup(eng); err != nil {
		return err
	}

	exp := eng.AddFixedExpense(args[0], amount, due)
	reportSaveError(eng)

	fmt.Printf("  Added %s (%s), id %s.\n",
		exp.Name, cli.FormatCurrency(exp.Amount, cfg.General.Language), exp.ID[:8])
	return nil
}

func runExpensesUpdate(_ *cobra.Command, args []string) error {
	eng, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := requireSetup(eng); err != nil {
		return err
	}

	existing, ok := findExpense(eng.Snapshot().FixedExpenses, args[0])
	if !ok {
		fmt.Printf("  No fixed expense with id %s — nothing to do.\n", args[0])
		return nil
	}

	if flagExpenseName != "" {
		existing.Name = flagExpenseName
	}
	if flagExpenseAmount != "" {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(flagExpenseAmount, ",", "."), 64)
		if err != nil || amount <= 0 {
			return fmt.Errorf("invalid amount %q (must be a positive number)", flagExpenseAmount)
		}
		existing.Amount = amount
	}
	if flagExpenseClearDue {
		existing.DueDate = nil
	} else if flagExpenseDue != "" {
		d, err := time.ParseInLocation("2006-01-02", flagExpenseDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", flagExpenseDue, err)
		}
		existing.DueDate = &d
	}

	eng.UpdateFixedExpense(existing)
	reportSaveError(eng)

	fmt.Printf("  Updated %s (%s).\n",
		existing.Name, cli.FormatCurrency(existing.Amount, cfg.General.Language))
	return nil
}

func runExpensesDelete(_ *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := requireSetup(eng); err != nil {
		return err
	}

	exp, ok := findExpense(eng.Snapshot().FixedExpenses, args[0])
	if !ok {
		fmt.Printf("  No fixed expense with id %s — nothing to do.\n", args[0])
		return nil
	}

	eng.DeleteFixedExpense(exp.ID)
	reportSaveError(eng)

	fmt.Printf("  Deleted %s.\n", exp.Name)
	return nil
}

// findExpense matches a full id or an unambiguous 8-char prefix.
func findExpense(expenses []model.FixedExpense, in string) (model.FixedExpense, bool) {
	var match model.FixedExpense
	count := 0
	for _, exp := range expenses {
		if exp.ID == in {
			return exp, true
		}
		if len(in) >= 8 && len(exp.ID) > len(in) && exp.ID[:len(in)] == in {
			match = exp
			count++
		}
	}
	return match, count == 1
}
