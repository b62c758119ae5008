package reflector_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/core/dbclient/dbclienttest"
	"github.com/alisideas/bookshare/schema/reflector"
)

type fakeStore struct {
	tables map[string][]reflector.Column
	err    error
}

func (f *fakeStore) CurrentSchema(context.Context) (string, error) { return "public", nil }
func (f *fakeStore) DatabaseName(context.Context) (string, error)  { return "bookshare", nil }

func (f *fakeStore) Tables(context.Context, string) ([]string, error) {
	var names []string
	for n := range f.tables {
		names = append(names, n)
	}
	return names, nil
}

func (f *fakeStore) Columns(_ context.Context, _, table string) ([]reflector.Column, error) {
	return f.tables[table], f.err
}

func (f *fakeStore) PrimaryKey(context.Context, string, string) ([]string, error) {
	return []string{"id"}, nil
}

func (f *fakeStore) ForeignKeys(context.Context, string, string) ([]reflector.ForeignKey, error) {
	return nil, nil
}

func (f *fakeStore) Indexes(context.Context, string, string) ([]reflector.Index, error) {
	return nil, nil
}

func TestReflectUsesCurrentSchema(t *testing.T) {
	store := &fakeStore{tables: map[string][]reflector.Column{
		"chats": {{Name: "id", DBType: "text"}, {Name: "created_at", DBType: "timestamptz"}},
	}}

	snap, err := reflector.NewReflector(store).Reflect(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "public", snap.SchemaName)
	assert.Equal(t, "bookshare", snap.Database)
	require.Contains(t, snap.Tables, "chats")
	assert.Equal(t, []string{"id"}, snap.Tables["chats"].PrimaryKey)
	assert.True(t, snap.Tables["chats"].HasColumn("created_at"))

	var buf bytes.Buffer
	require.NoError(t, reflector.WriteJSON(&buf, snap))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "public", decoded["schemaName"])

	store.err = errors.New("boom")
	_, err = reflector.NewReflector(store).Reflect(context.Background(), "public")
	assert.ErrorContains(t, err, "get columns for chats")
}

func TestCheck(t *testing.T) {
	snap := &reflector.Snapshot{Tables: map[string]*reflector.Table{
		"chats": {Name: "chats", Columns: []reflector.Column{{Name: "id"}, {Name: "legacy"}}},
	}}

	drift := reflector.Check(snap, map[string][]string{
		"chats":    {"id", "updated_at"},
		"messages": {"id"},
	})

	assert.Equal(t, []reflector.Drift{
		{Table: "chats", Column: "updated_at", Problem: reflector.MissingColumn},
		{Table: "chats", Column: "legacy", Problem: reflector.ExtraColumn},
		{Table: "messages", Problem: reflector.MissingTable},
	}, drift)
	assert.Equal(t, "chats.updated_at: missing column", drift[0].String())
	assert.Equal(t, "messages: missing table", drift[2].String())
}

func TestMigratedSchemaMatchesStores(t *testing.T) {
	c := dbclienttest.New(t, "it_reflect")
	ctx := context.Background()

	snap, err := reflector.NewReflector(reflector.NewPostgresStore(c.DB())).Reflect(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "it_reflect", snap.SchemaName)

	assert.Empty(t, reflector.Check(snap, dbclient.TableColumns()))

	accounts := snap.Tables["accounts"]
	require.NotNil(t, accounts)
	assert.Equal(t, []string{"id"}, accounts.PrimaryKey)
	require.NotEmpty(t, accounts.ForeignKeys)
	assert.Equal(t, "users", accounts.ForeignKeys[0].RefTable)
	assert.Equal(t, "CASCADE", accounts.ForeignKeys[0].OnDelete)

	var unique bool
	for _, idx := range snap.Tables["sessions"].Indexes {
		if idx.Unique && len(idx.Columns) == 1 && idx.Columns[0] == "session_token" {
			unique = true
		}
	}
	assert.True(t, unique, "sessions.session_token should carry a unique index")
}
