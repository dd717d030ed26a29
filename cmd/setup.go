package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dayspend/internal/dates"
	"dayspend/internal/model"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	eng, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("  Welcome to dayspend!")
	fmt.Println()

	if eng.IsSetupComplete() {
		fmt.Println("  A budget is already configured. Running setup again replaces")
		fmt.Println("  the salary schedule and balances (expenses and transactions stay).")
		fmt.Print("  Continue? [y/N] ")
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Println("  Cancelled.")
			return nil
		}
		fmt.Println()
	}

	// 1. Frequency
	fmt.Println("  1. How often do you get paid?")
	fmt.Println("     (1) Monthly [default]")
	fmt.Println("     (2) Every two weeks")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	freq := model.FrequencyMonthly
	if strings.TrimSpace(choice) == "2" {
		freq = model.FrequencyBiweekly
	}
	fmt.Println()

	// 2. Last salary date
	today := time.Now().Format("2006-01-02")
	fmt.Println("  2. When did you last get paid? (YYYY-MM-DD)")
	fmt.Printf("     [default: %s]\n", today)
	fmt.Print("     > ")
	dateIn, _ := reader.ReadString('\n')
	dateIn = strings.TrimSpace(dateIn)
	if dateIn == "" {
		dateIn = today
	}
	initialDate, err := time.ParseInLocation("2006-01-02", dateIn, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateIn, err)
	}
	fmt.Println()

	// 3. Salary amount
	fmt.Println("  3. Salary amount per payment")
	salaryAmount := promptAmount(reader, 0)
	fmt.Println()

	// 4. Second salary (biweekly only)
	var secondAmount *float64
	if freq == model.FrequencyBiweekly {
		fmt.Println("  4. Second salary within the period (leave blank if none)")
		fmt.Print("     > ")
		in, _ := reader.ReadString('\n')
		in = strings.TrimSpace(in)
		if in != "" {
			v, err := strconv.ParseFloat(in, 64)
			if err == nil {
				secondAmount = &v
			} else {
				fmt.Println("     Not a number, skipping second salary.")
			}
		}
		fmt.Println()
	}

	// 5. Balances
	fmt.Println("  5. Current account balance")
	currentBalance := promptAmount(reader, 0)
	fmt.Println()

	fmt.Println("  6. Target balance to keep in reserve (0 for none)")
	targetBalance := promptAmount(reader, 0)
	fmt.Println()

	eng.CompleteSetup(freq, initialDate, currentBalance, targetBalance, salaryAmount, secondAmount)
	reportSaveError(eng)

	si := eng.Snapshot().SalaryInfo
	fmt.Println("  All set!")
	fmt.Printf("  Next payday: %s\n", si.NextDate.Format("2006-01-02"))
	if si.HasSecondSalary() {
		fmt.Printf("  Second payment: %s\n", si.SecondDate.Format("2006-01-02"))
	}
	fmt.Println()
	fmt.Println("  Run `dayspend` for your daily budget, `dayspend tui` for the dashboard.")
	fmt.Println()

	// Sanity hint when the entered date is far in the past: multiple
	// paydays may be due and will be credited one per check.
	if dates.DaysRemaining(initialDate, time.Now()) > 60 {
		fmt.Println("  Note: the salary date is a while back; due paydays are credited")
		fmt.Println("  one at a time as you use the app.")
		fmt.Println()
	}

	return nil
}

// promptAmount reads a number, falling back to def on empty or bad input.
func promptAmount(reader *bufio.Reader, def float64) float64 {
	fmt.Print("     > ")
	in, _ := reader.ReadString('\n')
	in = strings.TrimSpace(strings.ReplaceAll(in, ",", "."))
	if in == "" {
		return def
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		fmt.Printf("     Not a number, using %.2f\n", def)
		return def
	}
	return v
}
