package dbclient

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/alisideas/bookshare/core/repositories/accountrepo"
	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/repositories/chatparticipantrepo"
	"github.com/alisideas/bookshare/core/repositories/chatrepo"
	"github.com/alisideas/bookshare/core/repositories/messagerepo"
	"github.com/alisideas/bookshare/core/repositories/sessionrepo"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// group returns an errgroup for relation loading. A transaction runs on one
// connection, so loaders run one at a time there.
func (c *Client) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	if c.inTx {
		g.SetLimit(1)
	}
	return g, gctx
}

// UserInclude selects the relations FindUserInclude loads.
type UserInclude struct {
	Accounts         bool
	Sessions         bool
	Books            bool
	Transactions     bool
	Messages         bool
	ChatParticipants bool
}

// UserWithRelations is a User with its requested relations. Relations not
// requested stay nil.
type UserWithRelations struct {
	userrepo.User
	Accounts         []accountrepo.Account                 `json:"accounts,omitempty"`
	Sessions         []sessionrepo.Session                 `json:"sessions,omitempty"`
	Books            []bookrepo.Book                       `json:"books,omitempty"`
	Transactions     []transactionrepo.Transaction         `json:"transactions,omitempty"`
	Messages         []messagerepo.Message                 `json:"messages,omitempty"`
	ChatParticipants []chatparticipantrepo.ChatParticipant `json:"chatParticipants,omitempty"`
}

// FindUserInclude reads one user and loads the included relations
// concurrently. A missing user yields nil.
func (c *Client) FindUserInclude(ctx context.Context, where userrepo.WhereUnique, inc UserInclude) (*UserWithRelations, error) {
	u, err := c.Users.FindUnique(ctx, where)
	if err != nil || u == nil {
		return nil, err
	}

	out := &UserWithRelations{User: *u}
	id := fop.StringEquals(u.ID)
	g, gctx := c.group(ctx)

	if inc.Accounts {
		g.Go(func() (err error) {
			out.Accounts, err = c.Accounts.FindMany(gctx, accountrepo.Query{Where: accountrepo.Where{UserID: id}})
			return err
		})
	}
	if inc.Sessions {
		g.Go(func() (err error) {
			out.Sessions, err = c.Sessions.FindMany(gctx, sessionrepo.Query{Where: sessionrepo.Where{UserID: id}})
			return err
		})
	}
	if inc.Books {
		g.Go(func() (err error) {
			out.Books, err = c.Books.FindMany(gctx, bookrepo.Query{Where: bookrepo.Where{OwnerID: id}})
			return err
		})
	}
	if inc.Transactions {
		g.Go(func() (err error) {
			out.Transactions, err = c.Transactions.FindMany(gctx, transactionrepo.Query{Where: transactionrepo.Where{UserID: id}})
			return err
		})
	}
	if inc.Messages {
		g.Go(func() (err error) {
			out.Messages, err = c.Messages.FindMany(gctx, messagerepo.Query{
				Where:   messagerepo.Where{SenderID: id},
				OrderBy: []fop.Order{fop.Asc(messagerepo.FieldTimestamp)},
			})
			return err
		})
	}
	if inc.ChatParticipants {
		g.Go(func() (err error) {
			out.ChatParticipants, err = c.ChatParticipants.FindMany(gctx, chatparticipantrepo.Query{Where: chatparticipantrepo.Where{UserID: id}})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ChatInclude selects the relations FindChatInclude loads.
type ChatInclude struct {
	Participants bool
	Messages     bool
}

// ChatWithRelations is a Chat with its requested relations.
type ChatWithRelations struct {
	chatrepo.Chat
	Participants []chatparticipantrepo.ChatParticipant `json:"participants,omitempty"`
	Messages     []messagerepo.Message                 `json:"messages,omitempty"`
}

// FindChatInclude reads one chat with its participants and/or messages,
// messages oldest first.
func (c *Client) FindChatInclude(ctx context.Context, where chatrepo.WhereUnique, inc ChatInclude) (*ChatWithRelations, error) {
	ch, err := c.Chats.FindUnique(ctx, where)
	if err != nil || ch == nil {
		return nil, err
	}

	out := &ChatWithRelations{Chat: *ch}
	id := fop.StringEquals(ch.ID)
	g, gctx := c.group(ctx)

	if inc.Participants {
		g.Go(func() (err error) {
			out.Participants, err = c.ChatParticipants.FindMany(gctx, chatparticipantrepo.Query{Where: chatparticipantrepo.Where{ChatID: id}})
			return err
		})
	}
	if inc.Messages {
		g.Go(func() (err error) {
			out.Messages, err = c.Messages.FindMany(gctx, messagerepo.Query{
				Where:   messagerepo.Where{ChatID: id},
				OrderBy: []fop.Order{fop.Asc(messagerepo.FieldTimestamp)},
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
