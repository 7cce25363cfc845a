package chat

import "context"

// MessageRepository defines data access methods for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)

	// ListConversation returns the most recent messages between two
	// users in chronological order. This is the recovery path after a
	// reconnect; live delivery is best-effort.
	ListConversation(ctx context.Context, userID, peerID string, limit int) ([]Message, error)
}
