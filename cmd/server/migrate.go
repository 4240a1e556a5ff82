package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all up migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(mg *database.Migrator) error { return mg.Up() })
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations, one step by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				return withMigrator(cmd, func(mg *database.Migrator) error { return mg.Down(steps) })
			},
		},
	)
	return cmd
}

// withMigrator opens a multi-statement connection, runs fn and prints the
// resulting schema version.
func withMigrator(cmd *cobra.Command, fn func(*database.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Open(cmd.Context(), dbOptions(cfg, true))
	if err != nil {
		return err
	}
	defer db.Close()

	mg, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := fn(mg); err != nil {
		return err
	}
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
