package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
)

// SeedUser is a fixture user. PlainPassword, when set, is hashed on insert.
type SeedUser struct {
	userrepo.CreateUser `yaml:",inline"`
	PlainPassword       string `yaml:"plainPassword"`
}

// Fixture is the seed file layout. Rows reference each other by explicit id.
type Fixture struct {
	Users        []SeedUser                          `yaml:"users"`
	Books        []bookrepo.CreateBook               `yaml:"books"`
	Transactions []transactionrepo.CreateTransaction `yaml:"transactions"`
}

// SeedResult counts rows inserted per table.
type SeedResult struct {
	Users        int64 `json:"users"`
	Books        int64 `json:"books"`
	Transactions int64 `json:"transactions"`
}

// ParseFixture decodes a YAML fixture, rejecting unknown keys.
func ParseFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Fixture{}, fmt.Errorf("decoding fixture: %w", err)
	}
	return f, nil
}

// Seed inserts the fixture in one transaction. Rows whose id already exists
// are skipped, so seeding twice is harmless.
func Seed(ctx context.Context, client *dbclient.Client, f Fixture) (SeedResult, error) {
	var res SeedResult

	err := client.Transaction(ctx, func(ctx context.Context, tx *dbclient.Client) error {
		for _, u := range f.Users {
			if u.ID != "" {
				existing, err := tx.Users.FindUnique(ctx, userrepo.ByID(u.ID))
				if err != nil {
					return err
				}
				if existing != nil {
					continue
				}
			}

			var err error
			if u.PlainPassword != "" {
				_, err = tx.Users.CreateWithPassword(ctx, u.CreateUser, u.PlainPassword)
			} else {
				_, err = tx.Users.Create(ctx, u.CreateUser)
			}
			if err != nil {
				return err
			}
			res.Users++
		}

		n, err := tx.Books.CreateMany(ctx, f.Books, true)
		if err != nil {
			return err
		}
		res.Books = n

		n, err = tx.Transactions.CreateMany(ctx, f.Transactions, true)
		if err != nil {
			return err
		}
		res.Transactions = n
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}

func newSeedCmd(env *Env) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture rows from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fh, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening fixture: %w", err)
			}
			defer fh.Close()

			fixture, err := ParseFixture(fh)
			if err != nil {
				return err
			}

			client, err := env.Client()
			if err != nil {
				return err
			}

			env.Log.InfoContext(cmd.Context(), "seeding started", "file", file)
			res, err := Seed(cmd.Context(), client, fixture)
			if err != nil {
				return err
			}
			env.Log.InfoContext(cmd.Context(), "seeding completed successfully",
				"users", res.Users, "books", res.Books, "transactions", res.Transactions)
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture file")
	cmd.MarkFlagRequired("file")
	return cmd
}
