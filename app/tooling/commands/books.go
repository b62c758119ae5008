package commands

import (
	"github.com/spf13/cobra"

	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/core/usecases/lendingcase"
)

func newBooksCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse the catalog",
	}

	var owner, search, limit, skip string
	list := &cobra.Command{
		Use:   "list",
		Short: "List books by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := fop.ParsePage(limit, skip)
			if err != nil {
				return err
			}
			client, err := env.Client()
			if err != nil {
				return err
			}

			var books []bookrepo.Book
			switch {
			case search != "":
				books, err = client.Books.Search(cmd.Context(), search, page)
			case owner != "":
				books, err = client.Books.ListByOwner(cmd.Context(), owner, page)
			default:
				books, err = client.Books.FindMany(cmd.Context(), bookrepo.Query{
					OrderBy: []fop.Order{fop.Asc(bookrepo.FieldTitle)},
					Take:    fop.Take(page.Limit),
					Skip:    page.Skip,
				})
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), books)
		},
	}
	list.Flags().StringVar(&owner, "owner", "", "only books owned by this user id")
	list.Flags().StringVar(&search, "search", "", "match title or author")
	list.Flags().StringVar(&limit, "limit", "", "rows per page (1-100, default 20)")
	list.Flags().StringVar(&skip, "skip", "", "rows to skip")

	cmd.AddCommand(list)
	return cmd
}

func newLendCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lend",
		Short: "Borrow and return books",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "borrow <book-id> <user-id>",
			Short: "Borrow one copy of a book",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := env.Client()
				if err != nil {
					return err
				}
				loan, err := lendingcase.New(env.Log, client).Borrow(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), loan)
			},
		},
		&cobra.Command{
			Use:   "return <transaction-id>",
			Short: "Return a borrowed book",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := env.Client()
				if err != nil {
					return err
				}
				loan, err := lendingcase.New(env.Log, client).Return(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), loan)
			},
		},
	)
	return cmd
}
