package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/chat"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
)

type messageRepository struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) chat.MessageRepository {
	return &messageRepository{db: db}
}

// Create implements chat.MessageRepository. A message is persisted
// before any live delivery is attempted, so history is the source of
// truth when a stream drops.
func (r *messageRepository) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO chat_messages (sender_id, recipient_id, body, file_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, m.SenderID, m.RecipientID, m.Body, m.FileURL).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to create chat message: %w", err)
	}

	return m, nil
}

// ListConversation implements chat.MessageRepository. The inner query
// grabs the newest rows, the outer one flips them back to chronological
// order for the client.
func (r *messageRepository) ListConversation(ctx context.Context, userID, peerID string, limit int) ([]chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT * FROM (
			SELECT m.id, m.sender_id, m.recipient_id, m.body, m.file_url, m.created_at,
				   u.name AS sender_name
			FROM chat_messages m
			LEFT JOIN users u ON u.id = m.sender_id
			WHERE (m.sender_id = $1 AND m.recipient_id = $2)
			   OR (m.sender_id = $2 AND m.recipient_id = $1)
			ORDER BY m.created_at DESC
			LIMIT $3
		) recent
		ORDER BY recent.created_at ASC
	`

	rows, err := q.Query(ctx, query, userID, peerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.FileURL, &m.CreatedAt,
			&m.SenderName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}

	return messages, nil
}
