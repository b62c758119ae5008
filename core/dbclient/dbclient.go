// Package dbclient wires the model delegates onto one lazily connected
// Postgres handle and adds the client-level surface: lifecycle, events,
// transactions, raw commands and relation traversal.
package dbclient

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/repositories/accountrepo"
	"github.com/alisideas/bookshare/core/repositories/accountrepo/stores/accountpgxstore"
	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/repositories/bookrepo/stores/bookpgxstore"
	"github.com/alisideas/bookshare/core/repositories/chatparticipantrepo"
	"github.com/alisideas/bookshare/core/repositories/chatparticipantrepo/stores/chatparticipantpgxstore"
	"github.com/alisideas/bookshare/core/repositories/chatrepo"
	"github.com/alisideas/bookshare/core/repositories/chatrepo/stores/chatpgxstore"
	"github.com/alisideas/bookshare/core/repositories/messagerepo"
	"github.com/alisideas/bookshare/core/repositories/messagerepo/stores/messagepgxstore"
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/core/repositories/sessionrepo"
	"github.com/alisideas/bookshare/core/repositories/sessionrepo/stores/sessionpgxstore"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo/stores/transactionpgxstore"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/core/repositories/userrepo/stores/userpgxstore"
	"github.com/alisideas/bookshare/core/repositories/verificationtokenrepo"
	"github.com/alisideas/bookshare/core/repositories/verificationtokenrepo/stores/verificationtokenpgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/environment"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Config is the client configuration read from the environment.
type Config struct {
	ErrorFormat string        `env:"ERROR_FORMAT" default:"colorless"`
	Log         []string      `env:"LOG" separator:","`
	TxMaxWait   time.Duration `env:"TX_MAX_WAIT" default:"2s"`
	TxTimeout   time.Duration `env:"TX_TIMEOUT" default:"5s"`

	Database postgresdb.Options
}

// LoadConfig reads the client and database configuration under prefix.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing client config: %w", err)
	}
	return cfg, nil
}

type options struct {
	omit   map[string][]string
	pool   *postgresdb.Pool
	dbOpts []postgresdb.Option
}

// Option configures a Client.
type Option func(*options)

// WithOmit leaves fields of model out of every result, e.g.
// WithOmit(userrepo.Model, "password").
func WithOmit(model string, fields ...string) Option {
	return func(o *options) {
		o.omit[model] = append(o.omit[model], fields...)
	}
}

// WithPool runs the client on an already open pool. Disconnect closes it
// for good. The pool carries its own tracer, so the client emits no query
// events and OnQuery reports ErrEventDisabled.
func WithPool(pool *postgresdb.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

// WithDatabaseOptions passes options through to postgresdb.Open.
func WithDatabaseOptions(opts ...postgresdb.Option) Option {
	return func(o *options) {
		o.dbOpts = append(o.dbOpts, opts...)
	}
}

// Client exposes one delegate per model. A Client returned to a
// Transaction callback runs every delegate inside that transaction.
type Client struct {
	log    *logger.Logger
	cfg    Config
	format repositories.ErrorFormat
	omit   map[string][]string
	events *eventBus
	handle *postgresdb.Handle
	db     postgresdb.DBTX
	inTx   bool

	Accounts           *accountrepo.Repository
	Sessions           *sessionrepo.Repository
	Users              *userrepo.Repository
	VerificationTokens *verificationtokenrepo.Repository
	Books              *bookrepo.Repository
	Transactions       *transactionrepo.Repository
	Chats              *chatrepo.Repository
	ChatParticipants   *chatparticipantrepo.Repository
	Messages           *messagerepo.Repository
}

// New builds a client. No connection is made until Connect or the first
// statement.
func New(log *logger.Logger, cfg Config, opts ...Option) (*Client, error) {
	format, err := repositories.ParseErrorFormat(cfg.ErrorFormat)
	if err != nil {
		return nil, err
	}

	events, err := newEventBus(cfg.Log)
	if err != nil {
		return nil, err
	}

	o := options{omit: map[string][]string{}}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		cfg:    cfg,
		format: format,
		omit:   o.omit,
		events: events,
	}
	c.log = log.WithEvents(events.logHooks())

	if o.pool != nil {
		events.enabled[EventQuery] = false
		c.handle = postgresdb.FromPool(o.pool)
	} else {
		dbOpts := append([]postgresdb.Option{
			postgresdb.WithLogger(c.log.Logger),
			postgresdb.WithTracer(postgresdb.NewEventQueryTracer(events.query)),
			postgresdb.WithLogQueries(slices.Contains(cfg.Log, string(EventQuery))),
		}, o.dbOpts...)
		c.handle = postgresdb.NewHandleFromOptions(cfg.Database, dbOpts...)
	}

	c.bind(c.handle)
	return c, nil
}

// bind points every delegate at db.
func (c *Client) bind(db postgresdb.DBTX) {
	c.db = db
	ro := []repositories.Option{repositories.WithErrorFormat(c.format)}

	c.Accounts = accountrepo.NewRepository(c.log, accountpgxstore.NewStore(c.log, db, c.omit[accountrepo.Model]...), ro...)
	c.Sessions = sessionrepo.NewRepository(c.log, sessionpgxstore.NewStore(c.log, db, c.omit[sessionrepo.Model]...), ro...)
	c.Users = userrepo.NewRepository(c.log, userpgxstore.NewStore(c.log, db, c.omit[userrepo.Model]...), ro...)
	c.VerificationTokens = verificationtokenrepo.NewRepository(c.log, verificationtokenpgxstore.NewStore(c.log, db, c.omit[verificationtokenrepo.Model]...), ro...)
	c.Books = bookrepo.NewRepository(c.log, bookpgxstore.NewStore(c.log, db, c.omit[bookrepo.Model]...), ro...)
	c.Transactions = transactionrepo.NewRepository(c.log, transactionpgxstore.NewStore(c.log, db, c.omit[transactionrepo.Model]...), ro...)
	c.Chats = chatrepo.NewRepository(c.log, chatpgxstore.NewStore(c.log, db, c.omit[chatrepo.Model]...), ro...)
	c.ChatParticipants = chatparticipantrepo.NewRepository(c.log, chatparticipantpgxstore.NewStore(c.log, db, c.omit[chatparticipantrepo.Model]...), ro...)
	c.Messages = messagerepo.NewRepository(c.log, messagepgxstore.NewStore(c.log, db, c.omit[messagerepo.Model]...), ro...)
}

// Connect opens the pool now instead of on the first statement.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.handle.Connect(ctx); err != nil {
		return c.fail("connect", err, repositories.KindConnection)
	}
	c.log.InfoContext(ctx, "database connected", "target", eventTarget)
	return nil
}

// Disconnect closes the pool. A later statement reconnects, unless the
// client was built WithPool.
func (c *Client) Disconnect() {
	if c.inTx {
		return
	}
	if c.handle.Connected() {
		c.handle.Close()
		c.log.Info("database disconnected", "target", eventTarget)
	}
}

// DB returns what the delegates run on: the handle, or the open
// transaction inside a Transaction callback.
func (c *Client) DB() postgresdb.DBTX {
	return c.db
}

// InTransaction reports whether c is scoped to a transaction.
func (c *Client) InTransaction() bool {
	return c.inTx
}

// Logger returns the client's logger.
func (c *Client) Logger() *logger.Logger {
	return c.log
}

// clientModel names the client in errors, e.g. "Invalid `client.runCommandRaw()`".
const clientModel = "Client"

func (c *Client) fail(operation string, err error, fallback repositories.ErrorKind) error {
	err = pgxstore.MapError(err)
	return &repositories.StoreError{
		Model:     clientModel,
		Operation: operation,
		Kind:      repositories.KindOf(err, fallback),
		Err:       err,
		Format:    c.format,
	}
}

func parseLevels(levels []string) ([]EventType, error) {
	out := make([]EventType, 0, len(levels))
	for _, l := range levels {
		e := EventType(strings.ToLower(strings.TrimSpace(l)))
		switch e {
		case EventQuery, EventInfo, EventWarn, EventError:
			out = append(out, e)
		default:
			return nil, fmt.Errorf("unknown log level %q: want query, info, warn or error", l)
		}
	}
	return out, nil
}
