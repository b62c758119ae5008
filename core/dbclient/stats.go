package dbclient

import (
	"context"

	"github.com/alisideas/bookshare/core/repositories/accountrepo"
	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/repositories/chatparticipantrepo"
	"github.com/alisideas/bookshare/core/repositories/chatrepo"
	"github.com/alisideas/bookshare/core/repositories/messagerepo"
	"github.com/alisideas/bookshare/core/repositories/sessionrepo"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/core/repositories/verificationtokenrepo"
)

// Stats holds the row count of every model.
type Stats struct {
	Accounts           int64 `json:"accounts"`
	Sessions           int64 `json:"sessions"`
	Users              int64 `json:"users"`
	VerificationTokens int64 `json:"verificationTokens"`
	Books              int64 `json:"books"`
	Transactions       int64 `json:"transactions"`
	Chats              int64 `json:"chats"`
	ChatParticipants   int64 `json:"chatParticipants"`
	Messages           int64 `json:"messages"`
}

// Stats counts the rows of every model concurrently.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	g, gctx := c.group(ctx)

	g.Go(func() (err error) {
		s.Accounts, err = c.Accounts.Count(gctx, accountrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.Sessions, err = c.Sessions.Count(gctx, sessionrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.Users, err = c.Users.Count(gctx, userrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.VerificationTokens, err = c.VerificationTokens.Count(gctx, verificationtokenrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.Books, err = c.Books.Count(gctx, bookrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.Transactions, err = c.Transactions.Count(gctx, transactionrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.Chats, err = c.Chats.Count(gctx, chatrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.ChatParticipants, err = c.ChatParticipants.Count(gctx, chatparticipantrepo.Where{})
		return err
	})
	g.Go(func() (err error) {
		s.Messages, err = c.Messages.Count(gctx, messagerepo.Where{})
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return s, nil
}
