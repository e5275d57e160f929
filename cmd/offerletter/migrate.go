package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pratham13103/OfferLetter-Verification/internal/migrations"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or roll back the embedded schema migrations.

Examples:
  offerletter migrate up
  offerletter migrate down 1
  offerletter migrate version`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migrations.Migrator) error {
				return m.Up()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [N]",
		Short: "Roll back N migrations (all when N is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 0
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v <= 0 {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				n = v
			}

			return withMigrator(func(m *migrations.Migrator) error {
				return m.Down(n)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migrations.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)

				return nil
			})
		},
	})

	return cmd
}

func withMigrator(fn func(m *migrations.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := migrations.New(cfg.Postgres.Conn.Value, log.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return fn(m)
}
