package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"dayspend/internal/cli"

	"github.com/spf13/cobra"
)

var flagBalanceTarget string

var balanceCmd = &cobra.Command{
	Use:   "balance [value]",
	Short: "Show or overwrite balances",
	Long:  "Without arguments, shows the current and target balance. With a value, overwrites the current balance. Use --target to overwrite the target reserve.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBalance,
}

func init() {
	balanceCmd.Flags().StringVar(&flagBalanceTarget, "target", "", "Overwrite the target reserve balance")
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(_ *cobra.Command, args []string) error {
	eng, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := requireSetup(eng); err != nil {
		return err
	}
	syncSalary(eng)

	if len(args) == 1 {
		value, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", "."), 64)
		if err != nil {
			return fmt.Errorf("invalid balance %q", args[0])
		}
		eng.UpdateBalance(value)
	}

	if flagBalanceTarget != "" {
		// Negative targets are legal: willing to run a deficit.
		value, err := strconv.ParseFloat(strings.ReplaceAll(flagBalanceTarget, ",", "."), 64)
		if err != nil {
			return fmt.Errorf("invalid target %q", flagBalanceTarget)
		}
		eng.UpdateTargetBalance(value)
	}
	reportSaveError(eng)

	lang := cfg.General.Language
	snap := eng.Snapshot()
	fmt.Printf("  Balance %s, target reserve %s\n",
		cli.FormatCurrency(snap.CurrentBalance, lang),
		cli.FormatCurrency(snap.TargetBalance, lang),
	)
	return nil
}
