package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/schema/reflector"
)

func newSchemaCmd(env *Env) *cobra.Command {
	var schemaName string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the live database layout",
	}
	cmd.PersistentFlags().StringVar(&schemaName, "schema", "", "schema to inspect, defaults to the current schema")

	var output string
	reflect := &cobra.Command{
		Use:   "reflect",
		Short: "Write the reflected tables as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := reflectSchema(cmd, env, schemaName)
			if err != nil {
				return err
			}

			if output == "" {
				return reflector.WriteJSON(cmd.OutOrStdout(), snap)
			}
			fh, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer fh.Close()
			if err := reflector.WriteJSON(fh, snap); err != nil {
				return fmt.Errorf("write JSON: %w", err)
			}
			env.Log.InfoContext(cmd.Context(), "generated JSON", "path", output, "tables", len(snap.Tables))
			return nil
		},
	}
	reflect.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")

	check := &cobra.Command{
		Use:   "check",
		Short: "Fail when model tables and the database disagree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := reflectSchema(cmd, env, schemaName)
			if err != nil {
				return err
			}

			drift := reflector.Check(snap, dbclient.TableColumns())
			for _, d := range drift {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			if len(drift) > 0 {
				return fmt.Errorf("schema %s: %d differences", snap.SchemaName, len(drift))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema %s matches %d model tables\n", snap.SchemaName, len(dbclient.TableColumns()))
			return nil
		},
	}

	cmd.AddCommand(reflect, check)
	return cmd
}

func reflectSchema(cmd *cobra.Command, env *Env, schemaName string) (*reflector.Snapshot, error) {
	client, err := env.Client()
	if err != nil {
		return nil, err
	}
	snap, err := reflector.NewReflector(reflector.NewPostgresStore(client.DB())).Reflect(cmd.Context(), schemaName)
	if err != nil {
		return nil, fmt.Errorf("reflect schema: %w", err)
	}
	return snap, nil
}
