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
	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Relation traversal starts from a unique key and follows one relation:
//
//	txs, err := client.User(userrepo.ByID(id)).Transactions(ctx)
//
// The parent row is read first; when it does not exist the result is nil
// with no error. To-many relations take an optional query whose Where is
// combined with the relation filter.

func queryOf[W, WU any](q []fop.Query[W, WU]) fop.Query[W, WU] {
	if len(q) > 0 {
		return q[0]
	}
	return fop.Query[W, WU]{}
}

// ============================================================================
// User
// ============================================================================

type UserRelations struct {
	c     *Client
	where userrepo.WhereUnique
}

func (c *Client) User(where userrepo.WhereUnique) UserRelations {
	return UserRelations{c: c, where: where}
}

func (r UserRelations) Get(ctx context.Context) (*userrepo.User, error) {
	return r.c.Users.FindUnique(ctx, r.where)
}

func (r UserRelations) Accounts(ctx context.Context, q ...accountrepo.Query) ([]accountrepo.Account, error) {
	u, err := r.Get(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = accountrepo.Where{UserID: fop.StringEquals(u.ID), AND: []accountrepo.Where{query.Where}}
	return r.c.Accounts.FindMany(ctx, query)
}

func (r UserRelations) Sessions(ctx context.Context, q ...sessionrepo.Query) ([]sessionrepo.Session, error) {
	u, err := r.Get(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = sessionrepo.Where{UserID: fop.StringEquals(u.ID), AND: []sessionrepo.Where{query.Where}}
	return r.c.Sessions.FindMany(ctx, query)
}

func (r UserRelations) Books(ctx context.Context, q ...bookrepo.Query) ([]bookrepo.Book, error) {
	u, err := r.Get(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = bookrepo.Where{OwnerID: fop.StringEquals(u.ID), AND: []bookrepo.Where{query.Where}}
	return r.c.Books.FindMany(ctx, query)
}

func (r UserRelations) Transactions(ctx context.Context, q ...transactionrepo.Query) ([]transactionrepo.Transaction, error) {
	u, err := r.Get(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = transactionrepo.Where{UserID: fop.StringEquals(u.ID), AND: []transactionrepo.Where{query.Where}}
	return r.c.Transactions.FindMany(ctx, query)
}

func (r UserRelations) Messages(ctx context.Context, q ...messagerepo.Query) ([]messagerepo.Message, error) {
	u, err := r.Get(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = messagerepo.Where{SenderID: fop.StringEquals(u.ID), AND: []messagerepo.Where{query.Where}}
	return r.c.Messages.FindMany(ctx, query)
}

func (r UserRelations) ChatParticipants(ctx context.Context, q ...chatparticipantrepo.Query) ([]chatparticipantrepo.ChatParticipant, error) {
	u, err := r.Get(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = chatparticipantrepo.Where{UserID: fop.StringEquals(u.ID), AND: []chatparticipantrepo.Where{query.Where}}
	return r.c.ChatParticipants.FindMany(ctx, query)
}

// Chats follows the user's memberships to the chats themselves.
func (r UserRelations) Chats(ctx context.Context, q ...chatrepo.Query) ([]chatrepo.Chat, error) {
	parts, err := r.ChatParticipants(ctx)
	if err != nil || parts == nil {
		return nil, err
	}
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.ChatID)
	}
	query := queryOf(q)
	query.Where = chatrepo.Where{ID: fop.StringIn(ids...), AND: []chatrepo.Where{query.Where}}
	return r.c.Chats.FindMany(ctx, query)
}

// ============================================================================
// Account, Session
// ============================================================================

type AccountRelations struct {
	c     *Client
	where accountrepo.WhereUnique
}

func (c *Client) Account(where accountrepo.WhereUnique) AccountRelations {
	return AccountRelations{c: c, where: where}
}

func (r AccountRelations) Get(ctx context.Context) (*accountrepo.Account, error) {
	return r.c.Accounts.FindUnique(ctx, r.where)
}

func (r AccountRelations) User(ctx context.Context) (*userrepo.User, error) {
	a, err := r.Get(ctx)
	if err != nil || a == nil {
		return nil, err
	}
	return r.c.Users.FindUnique(ctx, userrepo.ByID(a.UserID))
}

type SessionRelations struct {
	c     *Client
	where sessionrepo.WhereUnique
}

func (c *Client) Session(where sessionrepo.WhereUnique) SessionRelations {
	return SessionRelations{c: c, where: where}
}

func (r SessionRelations) Get(ctx context.Context) (*sessionrepo.Session, error) {
	return r.c.Sessions.FindUnique(ctx, r.where)
}

func (r SessionRelations) User(ctx context.Context) (*userrepo.User, error) {
	s, err := r.Get(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	return r.c.Users.FindUnique(ctx, userrepo.ByID(s.UserID))
}

// ============================================================================
// Book, Transaction
// ============================================================================

type BookRelations struct {
	c     *Client
	where bookrepo.WhereUnique
}

func (c *Client) Book(where bookrepo.WhereUnique) BookRelations {
	return BookRelations{c: c, where: where}
}

func (r BookRelations) Get(ctx context.Context) (*bookrepo.Book, error) {
	return r.c.Books.FindUnique(ctx, r.where)
}

func (r BookRelations) Owner(ctx context.Context) (*userrepo.User, error) {
	b, err := r.Get(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	return r.c.Users.FindUnique(ctx, userrepo.ByID(b.OwnerID))
}

func (r BookRelations) Transactions(ctx context.Context, q ...transactionrepo.Query) ([]transactionrepo.Transaction, error) {
	b, err := r.Get(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = transactionrepo.Where{BookID: fop.StringEquals(b.ID), AND: []transactionrepo.Where{query.Where}}
	return r.c.Transactions.FindMany(ctx, query)
}

type TransactionRelations struct {
	c     *Client
	where transactionrepo.WhereUnique
}

// Lending returns the relations of the Transaction model; the name
// Transaction is taken by the client transaction API.
func (c *Client) Lending(where transactionrepo.WhereUnique) TransactionRelations {
	return TransactionRelations{c: c, where: where}
}

func (r TransactionRelations) Get(ctx context.Context) (*transactionrepo.Transaction, error) {
	return r.c.Transactions.FindUnique(ctx, r.where)
}

func (r TransactionRelations) Book(ctx context.Context) (*bookrepo.Book, error) {
	t, err := r.Get(ctx)
	if err != nil || t == nil {
		return nil, err
	}
	return r.c.Books.FindUnique(ctx, bookrepo.ByID(t.BookID))
}

func (r TransactionRelations) User(ctx context.Context) (*userrepo.User, error) {
	t, err := r.Get(ctx)
	if err != nil || t == nil {
		return nil, err
	}
	return r.c.Users.FindUnique(ctx, userrepo.ByID(t.UserID))
}

// ============================================================================
// Chat, ChatParticipant, Message
// ============================================================================

type ChatRelations struct {
	c     *Client
	where chatrepo.WhereUnique
}

func (c *Client) Chat(where chatrepo.WhereUnique) ChatRelations {
	return ChatRelations{c: c, where: where}
}

func (r ChatRelations) Get(ctx context.Context) (*chatrepo.Chat, error) {
	return r.c.Chats.FindUnique(ctx, r.where)
}

func (r ChatRelations) Participants(ctx context.Context, q ...chatparticipantrepo.Query) ([]chatparticipantrepo.ChatParticipant, error) {
	ch, err := r.Get(ctx)
	if err != nil || ch == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = chatparticipantrepo.Where{ChatID: fop.StringEquals(ch.ID), AND: []chatparticipantrepo.Where{query.Where}}
	return r.c.ChatParticipants.FindMany(ctx, query)
}

// Messages lists the chat's messages, oldest first unless q orders them.
func (r ChatRelations) Messages(ctx context.Context, q ...messagerepo.Query) ([]messagerepo.Message, error) {
	ch, err := r.Get(ctx)
	if err != nil || ch == nil {
		return nil, err
	}
	query := queryOf(q)
	query.Where = messagerepo.Where{ChatID: fop.StringEquals(ch.ID), AND: []messagerepo.Where{query.Where}}
	if len(query.OrderBy) == 0 {
		query.OrderBy = []fop.Order{fop.Asc(messagerepo.FieldTimestamp)}
	}
	return r.c.Messages.FindMany(ctx, query)
}

type ChatParticipantRelations struct {
	c     *Client
	where chatparticipantrepo.WhereUnique
}

func (c *Client) ChatParticipant(where chatparticipantrepo.WhereUnique) ChatParticipantRelations {
	return ChatParticipantRelations{c: c, where: where}
}

func (r ChatParticipantRelations) Get(ctx context.Context) (*chatparticipantrepo.ChatParticipant, error) {
	return r.c.ChatParticipants.FindUnique(ctx, r.where)
}

func (r ChatParticipantRelations) User(ctx context.Context) (*userrepo.User, error) {
	p, err := r.Get(ctx)
	if err != nil || p == nil {
		return nil, err
	}
	return r.c.Users.FindUnique(ctx, userrepo.ByID(p.UserID))
}

func (r ChatParticipantRelations) Chat(ctx context.Context) (*chatrepo.Chat, error) {
	p, err := r.Get(ctx)
	if err != nil || p == nil {
		return nil, err
	}
	return r.c.Chats.FindUnique(ctx, chatrepo.ByID(p.ChatID))
}

type MessageRelations struct {
	c     *Client
	where messagerepo.WhereUnique
}

func (c *Client) Message(where messagerepo.WhereUnique) MessageRelations {
	return MessageRelations{c: c, where: where}
}

func (r MessageRelations) Get(ctx context.Context) (*messagerepo.Message, error) {
	return r.c.Messages.FindUnique(ctx, r.where)
}

func (r MessageRelations) Chat(ctx context.Context) (*chatrepo.Chat, error) {
	m, err := r.Get(ctx)
	if err != nil || m == nil {
		return nil, err
	}
	return r.c.Chats.FindUnique(ctx, chatrepo.ByID(m.ChatID))
}

func (r MessageRelations) Sender(ctx context.Context) (*userrepo.User, error) {
	m, err := r.Get(ctx)
	if err != nil || m == nil {
		return nil, err
	}
	return r.c.Users.FindUnique(ctx, userrepo.ByID(m.SenderID))
}
