// Package chatcase implements starting conversations and posting messages.
package chatcase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/core/repositories/chatparticipantrepo"
	"github.com/alisideas/bookshare/core/repositories/chatrepo"
	"github.com/alisideas/bookshare/core/repositories/messagerepo"
	"github.com/alisideas/bookshare/sdk/logger"
)

var (
	ErrNotParticipant = errors.New("sender is not a chat participant")
	ErrNoParticipants = errors.New("chat needs at least one participant")
)

// DefaultHistoryLimit bounds History when no limit is given.
const DefaultHistoryLimit = 50

// Conversation is a chat with its participants as created by Start.
type Conversation struct {
	Chat         chatrepo.Chat                         `json:"chat"`
	Participants []chatparticipantrepo.ChatParticipant `json:"participants"`
}

type UseCase struct {
	log    *logger.Logger
	client *dbclient.Client
	now    func() time.Time
}

func New(log *logger.Logger, client *dbclient.Client) *UseCase {
	return &UseCase{log: log, client: client, now: time.Now}
}

// Start opens a chat between the given users. Duplicate ids are joined once.
func (uc *UseCase) Start(ctx context.Context, userIDs ...string) (Conversation, error) {
	members := dedupe(userIDs)
	if len(members) == 0 {
		return Conversation{}, fmt.Errorf("start chat: %w", ErrNoParticipants)
	}

	var conv Conversation
	err := uc.client.Transaction(ctx, func(ctx context.Context, tx *dbclient.Client) error {
		chat, err := tx.Chats.Create(ctx, chatrepo.CreateChat{})
		if err != nil {
			return err
		}
		conv.Chat = chat
		conv.Participants = make([]chatparticipantrepo.ChatParticipant, 0, len(members))

		for _, userID := range members {
			p, err := tx.ChatParticipants.Create(ctx, chatparticipantrepo.CreateChatParticipant{
				UserID: userID,
				ChatID: chat.ID,
			})
			if err != nil {
				return err
			}
			conv.Participants = append(conv.Participants, p)
		}
		return nil
	})
	if err != nil {
		return Conversation{}, fmt.Errorf("start chat: %w", err)
	}

	uc.log.InfoContext(ctx, "chat started", "chat_id", conv.Chat.ID, "participants", len(members))
	return conv, nil
}

// Send posts text to the chat from a participant and bumps the chat's
// activity time.
func (uc *UseCase) Send(ctx context.Context, chatID, senderID, text string) (messagerepo.Message, error) {
	var msg messagerepo.Message

	err := uc.client.Transaction(ctx, func(ctx context.Context, tx *dbclient.Client) error {
		member, err := tx.ChatParticipants.IsMember(ctx, senderID, chatID)
		if err != nil {
			return err
		}
		if !member {
			return ErrNotParticipant
		}

		sent := uc.now().UTC()
		msg, err = tx.Messages.Create(ctx, messagerepo.CreateMessage{
			ChatID:    chatID,
			SenderID:  senderID,
			Text:      text,
			Timestamp: &sent,
		})
		if err != nil {
			return err
		}

		_, err = tx.Chats.Touch(ctx, chatID, sent)
		return err
	})
	if err != nil {
		return messagerepo.Message{}, fmt.Errorf("send message: %w", err)
	}

	uc.log.DebugContext(ctx, "message sent", "chat_id", chatID, "message_id", msg.ID)
	return msg, nil
}

// History returns up to limit messages of the chat in send order, starting
// after the message id in after when set.
func (uc *UseCase) History(ctx context.Context, chatID string, after *string, limit int) ([]messagerepo.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	msgs, err := uc.client.Messages.ListByChat(ctx, chatID, after, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return msgs, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
