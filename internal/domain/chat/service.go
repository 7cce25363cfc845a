package chat

import (
	"context"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/sse"
)

// ChatService defines business logic for direct messages. Messages are
// persisted before they are broadcast; the stored log is the source of
// truth and the SSE broadcast is best-effort.
type ChatService interface {
	Send(ctx context.Context, req SendMessageRequest) (MessageResponse, error)

	History(ctx context.Context, filter HistoryFilter) ([]MessageResponse, error)

	// Subscribe attaches the user to the live delivery hub. The cleanup
	// function must be called when the stream ends.
	Subscribe(ctx context.Context, userID string) (chan sse.Event, func())
}
