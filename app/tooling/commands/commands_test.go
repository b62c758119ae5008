package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/dbclient/dbclienttest"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/sdk/logger"
)

const fixtureYAML = `
users:
  - id: u1
    email: owner@x.com
    name: Owner
    plainPassword: hunter2
  - id: u2
    email: reader@x.com
books:
  - id: b1
    title: Dune
    author: Frank Herbert
    category: fiction
    stock: 2
    total: 2
    maxDuration: 14
    ownerId: u1
transactions:
  - id: t1
    bookId: b1
    userId: u2
    status: borrowed
`

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	require.Len(t, f.Users, 2)
	assert.Equal(t, "u1", f.Users[0].ID)
	assert.Equal(t, "hunter2", f.Users[0].PlainPassword)
	require.NotNil(t, f.Users[1].Email)
	assert.Equal(t, "reader@x.com", *f.Users[1].Email)
	require.Len(t, f.Books, 1)
	assert.Equal(t, 14, f.Books[0].MaxDuration)
	require.Len(t, f.Transactions, 1)
	assert.Equal(t, "borrowed", f.Transactions[0].Status)

	_, err = ParseFixture(strings.NewReader("users:\n  - nickname: x\n"))
	assert.Error(t, err)

	empty, err := ParseFixture(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Users)
}

func TestRawBody(t *testing.T) {
	body, err := rawBody(nil, []string{`{"sql":"SELECT 1"}`}, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"sql":"SELECT 1"}`, string(body))

	body, err = rawBody(strings.NewReader(`{"sql":"SELECT 2"}`), nil, "-")
	require.NoError(t, err)
	assert.JSONEq(t, `{"sql":"SELECT 2"}`, string(body))

	path := filepath.Join(t.TempDir(), "cmd.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sql":"SELECT 3"}`), 0o600))
	body, err = rawBody(nil, nil, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sql":"SELECT 3"}`, string(body))

	_, err = rawBody(nil, []string{"{}"}, path)
	assert.Error(t, err)
	_, err = rawBody(nil, nil, "")
	assert.Error(t, err)
}

func TestReadPasswordFromPipe(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("  s3cret \nignored\n"))

	pw, err := readPassword(cmd, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
}

func TestBooksListRejectsBadPage(t *testing.T) {
	env := NewEnv(logger.NewDiscard(), "BOOKSHARE_TOOLING_TEST")
	root := NewRoot(env, "test")
	root.SetArgs([]string{"books", "list", "--limit", "500"})
	root.SetOut(&bytes.Buffer{})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestRootCommands(t *testing.T) {
	root := NewRoot(NewEnv(logger.NewDiscard(), "BOOKSHARE_TOOLING_TEST"), "test")

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "seed", "stats", "raw", "sweep", "user", "books", "lend", "schema"})
}

func TestSeedIsIdempotent(t *testing.T) {
	client := dbclienttest.New(t, "it_tooling_seed")
	ctx := context.Background()

	f, err := ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	res, err := Seed(ctx, client, f)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Users: 2, Books: 1, Transactions: 1}, res)

	res, err = Seed(ctx, client, f)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, res)

	owner, err := client.Users.Authenticate(ctx, "owner@x.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner.ID)

	_, err = client.Users.Authenticate(ctx, "reader@x.com", "")
	assert.ErrorIs(t, err, userrepo.ErrInvalidCredentials)
}
