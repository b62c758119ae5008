package schemamigrationsrepo_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/dbclient/dbclienttest"
	"github.com/alisideas/bookshare/core/repositories/schemamigrationsrepo"
	"github.com/alisideas/bookshare/core/repositories/schemamigrationsrepo/stores/schemamigrationspgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/schema"
	"github.com/alisideas/bookshare/sdk/logger"
)

func TestStatus(t *testing.T) {
	c := dbclienttest.New(t, "it_migrations")
	log := logger.NewDiscard()
	repo := schemamigrationsrepo.NewRepository(log, schemamigrationspgxstore.NewStore(log, c.DB()))
	ctx := context.Background()

	embedded, err := repo.Status(ctx, schema.MigrationsFS, schema.MigrationsDir, postgresdb.Checksum)
	require.NoError(t, err)
	require.NotEmpty(t, embedded)
	for _, st := range embedded {
		assert.Equal(t, schemamigrationsrepo.StateApplied, st.State, st.Version)
		require.NotNil(t, st.Applied)
	}
	first := embedded[0].Version

	fsys := fstest.MapFS{
		"m/" + first:      {Data: []byte("-- edited")},
		"m/999_later.sql": {Data: []byte("SELECT 1;")},
		"m/readme.txt":    {Data: []byte("ignored")},
	}
	got, err := repo.Status(ctx, fsys, "m", postgresdb.Checksum)
	require.NoError(t, err)

	states := map[string]string{}
	for _, st := range got {
		states[st.Version] = st.State
	}
	assert.Equal(t, schemamigrationsrepo.StateModified, states[first])
	assert.Equal(t, schemamigrationsrepo.StatePending, states["999_later.sql"])
	assert.NotContains(t, states, "readme.txt")
	for _, st := range embedded[1:] {
		assert.Equal(t, schemamigrationsrepo.StateMissing, states[st.Version])
	}
}
