package main

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/export"
	"github.com/aidmqan/mqan-console/internal/ui"
)

var (
	seedReset bool
	seedYes   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference network data",
	Long: `Load the reference records into the database. The database is seeded
automatically on first use; --reset replaces every record, clears the
activity log and keeps saved views and settings. A backup of the database
file is written before a reset.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "replace existing records")
	seedCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "do not ask for confirmation")
}

func runSeed(cmd *cobra.Command, args []string) error {
	s, err := openSession(logStderr)
	if err != nil {
		return err
	}
	defer s.Close()

	if !seedReset {
		ui.PrintSuccess(fmt.Sprintf("%s is seeded (%d alerts, %d hospitals)", s.cfg.DBPath, len(s.catalog.Alerts), len(s.catalog.Hospitals)))
		return nil
	}

	if !seedYes {
		ok, err := ui.ConfirmReset(s.cfg.DBPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderDim("Reset cancelled"))
			return nil
		}
	}

	backup, err := export.Backup(s.cfg.DBPath, "")
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	s.logger.Info("Database backed up", "path", backup)

	var seedErr error
	err = spinner.New().
		Title("Seeding reference data...").
		Action(func() {
			if seedErr = s.store.SeedCatalog(catalog.Seed(), true); seedErr != nil {
				return
			}
			seedErr = s.store.ClearActivity()
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	if seedErr != nil {
		return fmt.Errorf("failed to seed: %w", seedErr)
	}

	ui.PrintSuccess(fmt.Sprintf("Database reset (backup: %s)", backup))
	return nil
}
