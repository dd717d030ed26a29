package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dayspend/internal/budget"
	"dayspend/internal/config"
	"dayspend/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

// snapshotName keys the single budget snapshot in the store.
const snapshotName = "budget"

var rootCmd = &cobra.Command{
	Use:   "dayspend",
	Short: "Personal daily-budget tracker",
	Long:  "Track salary, fixed expenses and spending, and get a daily allowance until your next payday.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: config or XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

// openEngine is the shared startup path: load config, open the snapshot
// store, hydrate the engine. The returned cleanup closes the store.
func openEngine() (*budget.Engine, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DataDir(cfg)
	}

	st, err := store.Open(filepath.Join(dataDir, "dayspend.db"))
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("opening budget data: %w", err)
	}

	eng := budget.New(st, snapshotName)
	if err := eng.Hydrate(); err != nil {
		// Corrupt snapshot: the engine already fell back to the empty
		// state, so just tell the user.
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Stored budget data was unreadable, starting fresh: %v\n", err)
		}
	}

	return eng, cfg, func() { _ = st.Close() }, nil
}

// requireSetup gates financial commands until initial setup has run.
func requireSetup(eng *budget.Engine) error {
	if !eng.IsSetupComplete() {
		return errors.New("no budget configured yet — run `dayspend setup` first")
	}
	return nil
}

// syncSalary runs the salary check, the equivalent of the check on app
// foregrounding. Mutating and reporting commands call it before doing
// their own work.
func syncSalary(eng *budget.Engine) {
	if !eng.IsSetupComplete() {
		return
	}
	if eng.CheckAndProcessSalary() && !flagQuiet {
		si := eng.Snapshot().SalaryInfo
		fmt.Fprintf(os.Stderr, "  Salary credited — next payday %s\n", si.NextDate.Format("2006-01-02"))
	}
}

// reportSaveError warns when the last mutation could not be persisted. The
// in-memory change already took effect; this is a durability warning only.
func reportSaveError(eng *budget.Engine) {
	if err := eng.LastSaveError(); err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: changes were not saved: %v\n", err)
	}
}
