// Package commands holds the bookshare tooling CLI.
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Env carries what every command needs. The client is built on first use so
// commands that never touch the database do not need its configuration.
type Env struct {
	Log    *logger.Logger
	Prefix string

	client *dbclient.Client
	opts   []dbclient.Option
}

// NewEnv creates an Env reading configuration under prefix.
func NewEnv(log *logger.Logger, prefix string, opts ...dbclient.Option) *Env {
	return &Env{Log: log, Prefix: prefix, opts: opts}
}

// Client returns the database client, creating it on first call.
func (e *Env) Client() (*dbclient.Client, error) {
	if e.client != nil {
		return e.client, nil
	}

	cfg, err := dbclient.LoadConfig(e.Prefix)
	if err != nil {
		return nil, err
	}
	client, err := dbclient.New(e.Log, cfg, e.opts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	e.client = client
	return client, nil
}

// Close disconnects the client if one was created.
func (e *Env) Close() {
	if e.client != nil {
		e.client.Disconnect()
	}
}

// NewRoot builds the command tree.
func NewRoot(env *Env, build string) *cobra.Command {
	root := &cobra.Command{
		Use:           "tooling",
		Short:         "Operate the bookshare database",
		Version:       build,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(env),
		newSeedCmd(env),
		newStatsCmd(env),
		newRawCmd(env),
		newSweepCmd(env),
		newUserCmd(env),
		newBooksCmd(env),
		newLendCmd(env),
		newSchemaCmd(env),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
