package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alisideas/bookshare/core/repositories/schemamigrationsrepo"
	"github.com/alisideas/bookshare/core/repositories/schemamigrationsrepo/stores/schemamigrationspgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/schema"
)

func newMigrateCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			return migrate(ctx, env)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Compare migration files with the applied ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := env.Client()
			if err != nil {
				return err
			}

			repo := schemamigrationsrepo.NewRepository(env.Log, schemamigrationspgxstore.NewStore(env.Log, client.DB()))
			status, err := repo.Status(cmd.Context(), schema.MigrationsFS, schema.MigrationsDir, postgresdb.Checksum)
			if err != nil {
				return fmt.Errorf("migration status: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT")
			for _, st := range status {
				applied := "-"
				if st.Applied != nil {
					applied = st.Applied.AppliedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", st.Version, st.State, applied)
			}
			return tw.Flush()
		},
	})
	return cmd
}

// migrate connects, checks the server and applies the embedded migrations.
func migrate(ctx context.Context, env *Env) error {
	client, err := env.Client()
	if err != nil {
		return err
	}

	env.Log.InfoContext(ctx, "migration started", "step", "connecting")
	if err := client.Connect(ctx); err != nil {
		return err
	}

	if err := postgresdb.Migrate(ctx, client.DB(), env.Log); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	env.Log.InfoContext(ctx, "migrations completed successfully")
	return nil
}
