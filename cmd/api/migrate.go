package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/wandernote/internal/config"
	"github.com/pkordes/wandernote/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, out io.Writer, p *goose.Provider) error {
				results, err := p.Up(ctx)
				for _, r := range results {
					fmt.Fprintf(out, "OK   %s (%s)\n", filepath.Base(r.Source.Path), r.Duration)
				}
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintln(out, "no migrations to apply")
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, out io.Writer, p *goose.Provider) error {
				r, err := p.Down(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "OK   %s (%s)\n", filepath.Base(r.Source.Path), r.Duration)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which migrations are applied",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, out io.Writer, p *goose.Provider) error {
				statuses, err := p.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					applied := "pending"
					if s.State == goose.StateApplied {
						applied = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "%-40s %s\n", filepath.Base(s.Source.Path), applied)
				}
				return nil
			}),
		},
	)
	return cmd
}

// withProvider opens DATABASE_URL through the pgx database/sql driver, since
// goose needs a *sql.DB rather than a pgx pool, and hands a goose provider
// over the embedded migrations to fn.
func withProvider(fn func(ctx context.Context, out io.Writer, p *goose.Provider) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		provider, err := migrations.NewProvider(db)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), cmd.OutOrStdout(), provider)
	}
}
