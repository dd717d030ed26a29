package cmd

import (
	"fmt"

	"dayspend/internal/cli"
	"dayspend/internal/model"

	"github.com/spf13/cobra"
)

var flagTxLimit int

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List recent transactions",
	RunE:    runTransactionsList,
}

var transactionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction and restore its amount to the balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransactionsDelete,
}

func init() {
	transactionsCmd.Flags().IntVarP(&flagTxLimit, "limit", "n", 20, "Number of transactions to show (0 for all)")
	transactionsCmd.AddCommand(transactionsDeleteCmd)
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactionsList(_ *cobra.Command, _ []string) error {
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
	txs := eng.Snapshot().Transactions

	if len(txs) == 0 {
		fmt.Println("  No transactions yet. Record one with `dayspend spend`.")
		return nil
	}

	shown := txs
	if flagTxLimit > 0 && len(shown) > flagTxLimit {
		shown = shown[:flagTxLimit]
	}

	// Already most-recent-first in the snapshot.
	rows := make([][]string, 0, len(shown))
	for _, tx := range shown {
		rows = append(rows, []string{
			tx.ID[:8],
			cli.FormatShortDate(tx.Date),
			truncate(tx.Description, 28),
			model.CategoryByID(tx.CategoryID).DisplayName(lang),
			cli.FormatCurrency(tx.Amount, lang),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Transactions (%d of %d)", len(shown), len(txs)),
		Headers: []string{"ID", "Date", "Description", "Category", "Amount"},
		Rows:    rows,
	}))
	fmt.Println("  Delete with `dayspend transactions delete <id>` (full or 8-char id).")
	fmt.Println()

	return nil
}

func runTransactionsDelete(_ *cobra.Command, args []string) error {
	eng, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := requireSetup(eng); err != nil {
		return err
	}

	id := resolveTxID(eng.Snapshot().Transactions, args[0])
	before := eng.Snapshot().CurrentBalance
	eng.DeleteTransaction(id)
	after := eng.Snapshot().CurrentBalance
	reportSaveError(eng)

	if before == after {
		fmt.Printf("  No transaction with id %s — nothing to do.\n", args[0])
		return nil
	}

	fmt.Printf("  Deleted. Balance restored to %s.\n", cli.FormatCurrency(after, cfg.General.Language))
	return nil
}

// resolveTxID accepts the full id or an unambiguous 8-char prefix.
func resolveTxID(txs []model.Transaction, in string) string {
	match := in
	count := 0
	for _, tx := range txs {
		if tx.ID == in {
			return in
		}
		if len(in) >= 8 && len(tx.ID) > len(in) && tx.ID[:len(in)] == in {
			match = tx.ID
			count++
		}
	}
	if count == 1 {
		return match
	}
	return in
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
