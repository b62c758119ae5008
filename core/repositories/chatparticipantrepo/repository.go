package chatparticipantrepo

import (
	"context"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for ChatParticipant.
type Storer interface {
	repositories.Storer[ChatParticipant, CreateChatParticipant, UpdateChatParticipant, Where, WhereUnique]
}

// Repository provides access to chat participant storage.
type Repository struct {
	*repositories.Repository[ChatParticipant, CreateChatParticipant, UpdateChatParticipant, Where, WhereUnique]
}

// NewRepository creates a new ChatParticipant repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[ChatParticipant, CreateChatParticipant, UpdateChatParticipant, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// IsMember reports whether userID participates in chatID.
func (r *Repository) IsMember(ctx context.Context, userID, chatID string) (bool, error) {
	p, err := r.FindUnique(ctx, ByUserChat(userID, chatID))
	if err != nil {
		return false, err
	}
	return p != nil, nil
}
