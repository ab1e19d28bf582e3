package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy hours and lookup tables from Google Sheets into the database",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	application, err := openApplication(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	if application.Deps.SyncService == nil {
		return errors.New("google sheets sync is not configured: set google.hoursspreadsheetid, google.inputsspreadsheetid and credentials")
	}
	result, err := application.Deps.SyncService.Sync(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("  Synced %d entries (batch %s), %d activities, %d calendar days, %d people, %d targets in %s\n",
		result.Entries, result.Batch, result.Activities, result.CalendarDays, result.People, result.Targets,
		result.Duration.Round(time.Millisecond))
	return nil
}
