package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagResetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all budget data",
	Long:  "Clears the balance, salary schedule, fixed expenses and transaction history. The next run of any command starts from setup.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetForce, "force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	eng, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if !flagResetForce {
		fmt.Print("This wipes the balance, salary schedule, expenses and all transactions. Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	eng.Reset()
	reportSaveError(eng)
	fmt.Println("All budget data cleared. Run 'dayspend setup' to start over.")
	return nil
}
