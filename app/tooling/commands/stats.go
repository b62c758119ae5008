package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newStatsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row counts of every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := env.Client()
			if err != nil {
				return err
			}
			stats, err := client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}
}

func newRawCmd(env *Env) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "raw [command-json]",
		Short: `Run a raw command such as {"sql": "SELECT 1", "args": []}`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := rawBody(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}

			client, err := env.Client()
			if err != nil {
				return err
			}
			out, err := client.RunCommandRawJSON(cmd.Context(), body)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the command from a file, - for stdin")
	return cmd
}

// rawBody picks the command from the argument, the file, or stdin.
func rawBody(stdin io.Reader, args []string, file string) ([]byte, error) {
	switch {
	case len(args) == 1 && file != "":
		return nil, fmt.Errorf("give the command as an argument or with --file, not both")
	case len(args) == 1:
		return []byte(args[0]), nil
	case file == "-":
		return io.ReadAll(stdin)
	case file != "":
		return os.ReadFile(file)
	}
	return nil, fmt.Errorf("no command given")
}
