package chat

import "time"

// Message is immutable once created; there is no edit or delete.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Body        *string
	FileURL     *string
	CreatedAt   time.Time

	SenderName *string
}
