package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viralforge/campaign-marketplace/internal/app/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(ctx context.Context) error {
	store, err := bootstrap.NewMaintenance(ctx, configPath, dbURL)
	if err != nil {
		return err
	}
	defer store.Close()

	applied, err := store.Migrate(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(map[string]int{"applied": applied})
	}
	fmt.Printf("applied %d migration file(s)\n", applied)
	return nil
}
