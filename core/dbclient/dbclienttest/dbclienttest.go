// Package dbclienttest starts clients against a real Postgres for
// integration tests. Tests are skipped unless BOOKSHARE_TEST_DATABASE_URL is
// set.
package dbclienttest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// EnvURL names the variable holding the test database URL.
const EnvURL = "BOOKSHARE_TEST_DATABASE_URL"

// Config returns the client configuration used by New, with every event
// level enabled.
func Config(url string) dbclient.Config {
	return dbclient.Config{
		ErrorFormat: "colorless",
		Log:         []string{"query", "info", "warn", "error"},
		TxMaxWait:   2 * time.Second,
		TxTimeout:   5 * time.Second,
		Database: postgresdb.Options{
			DatabaseURL: url,
			MaxConns:    5,
			MaxLifetime: time.Hour,
			MaxIdleTime: time.Hour,
			HealthCheck: time.Hour,
		},
	}
}

// New returns a connected client working in a freshly created, migrated
// Postgres schema. The schema is dropped and recreated on every call, and
// the client disconnects when the test ends.
func New(t *testing.T, schema string, opts ...dbclient.Option) *dbclient.Client {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set", EnvURL)
	}
	ctx := context.Background()
	quoted := postgresdb.MustQuoteIdentifier(schema)

	admin, err := postgresdb.NewTestDB(url)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "DROP SCHEMA IF EXISTS "+quoted+" CASCADE")
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+quoted)
	require.NoError(t, err)
	admin.Close()

	log := logger.NewDiscard()
	opts = append([]dbclient.Option{
		dbclient.WithDatabaseOptions(postgresdb.WithRuntimeParam("search_path", schema)),
	}, opts...)

	client, err := dbclient.New(log, Config(url), opts...)
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))
	t.Cleanup(client.Disconnect)

	require.NoError(t, postgresdb.Migrate(ctx, client.DB(), log))
	return client
}
