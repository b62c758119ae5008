package dbclient

import (
	"github.com/alisideas/bookshare/core/repositories/accountrepo/stores/accountpgxstore"
	"github.com/alisideas/bookshare/core/repositories/bookrepo/stores/bookpgxstore"
	"github.com/alisideas/bookshare/core/repositories/chatparticipantrepo/stores/chatparticipantpgxstore"
	"github.com/alisideas/bookshare/core/repositories/chatrepo/stores/chatpgxstore"
	"github.com/alisideas/bookshare/core/repositories/messagerepo/stores/messagepgxstore"
	"github.com/alisideas/bookshare/core/repositories/sessionrepo/stores/sessionpgxstore"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo/stores/transactionpgxstore"
	"github.com/alisideas/bookshare/core/repositories/userrepo/stores/userpgxstore"
	"github.com/alisideas/bookshare/core/repositories/verificationtokenrepo/stores/verificationtokenpgxstore"
)

// TableColumns maps every model table to the columns its store reads and
// writes.
func TableColumns() map[string][]string {
	return map[string][]string{
		accountpgxstore.Table.Name:           accountpgxstore.Table.Columns,
		sessionpgxstore.Table.Name:           sessionpgxstore.Table.Columns,
		userpgxstore.Table.Name:              userpgxstore.Table.Columns,
		verificationtokenpgxstore.Table.Name: verificationtokenpgxstore.Table.Columns,
		bookpgxstore.Table.Name:              bookpgxstore.Table.Columns,
		transactionpgxstore.Table.Name:       transactionpgxstore.Table.Columns,
		chatpgxstore.Table.Name:              chatpgxstore.Table.Columns,
		chatparticipantpgxstore.Table.Name:   chatparticipantpgxstore.Table.Columns,
		messagepgxstore.Table.Name:           messagepgxstore.Table.Columns,
	}
}
