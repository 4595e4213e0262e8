package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/calculator/internal/database"
	"github.com/at-ishikawa/calculator/internal/datasync"
	"github.com/at-ishikawa/calculator/internal/history"
	"github.com/at-ishikawa/calculator/schemas"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Create the calculation history tables in MySQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()
			if err := database.Ping(cmd.Context(), db, cfg.Database.ConnectAttempts); err != nil {
				return fmt.Errorf("database.Ping() > %w", err)
			}
			if err := database.Migrate(cmd.Context(), db, schemas.Migrations); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	})

	migrateCmd.AddCommand(newMigrateImportHistoryCommand())

	return migrateCmd
}

func newMigrateImportHistoryCommand() *cobra.Command {
	var sourceFile string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import-history",
		Short: "Import calculations from a YAML history file into the configured history backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			importer := datasync.NewImporter(env.store, env.format, cmd.OutOrStdout())
			result, err := importer.Import(ctx, history.NewYAMLStore(sourceFile), datasync.ImportOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", result.New, result.Skipped)
			return err
		},
	}
	cmd.Flags().StringVar(&sourceFile, "from", "", "YAML history file to import")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the history")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
