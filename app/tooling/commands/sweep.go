package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alisideas/bookshare/core/usecases/sessioncase"
)

func newSweepCmd(env *Env) *cobra.Command {
	var loop bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired sessions and verification tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sessioncase.LoadConfig(env.Prefix)
			if err != nil {
				return err
			}
			client, err := env.Client()
			if err != nil {
				return err
			}
			uc := sessioncase.New(env.Log, client, cfg)

			if loop {
				env.Log.InfoContext(cmd.Context(), "sweeping until interrupted", "interval", cfg.SweepInterval)
				return uc.Run(cmd.Context())
			}

			purged, err := uc.PurgeExpired(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), purged)
		},
	}

	cmd.Flags().BoolVar(&loop, "loop", false, "keep sweeping every SWEEP_INTERVAL")
	return cmd
}
