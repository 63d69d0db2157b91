package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Catskill909/radio-sub001/internal/database"
	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Manage the database schema for the Radio Calendar API.

Available subcommands:
  up      - Apply the current schema (GORM auto migration)
  status  - Show which tables exist`,
}

// migrateUpCmd applies the current schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the current schema",
	Long: `Create or update all tables to match the current model definitions.

Auto migration is additive: it creates missing tables, columns, and
indexes but never drops existing ones.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows which tables exist
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func openMigrationDB() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Schema Status")
	fmt.Fprintln(out, strings.Repeat("=", 40))

	migrator := db.Migrator()
	for _, model := range models.All() {
		state := "missing"
		if migrator.HasTable(model) {
			state = "present"
		}
		fmt.Fprintf(out, "%-20T %s\n", model, state)
	}
	return nil
}
