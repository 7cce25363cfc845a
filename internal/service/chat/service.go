package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/chat"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/sse"
)

type ChatServiceImpl struct {
	chat.MessageRepository
	user.UserRepository
	hub *sse.Hub
}

func NewChatService(messageRepository chat.MessageRepository, userRepository user.UserRepository, hub *sse.Hub) chat.ChatService {
	return &ChatServiceImpl{
		MessageRepository: messageRepository,
		UserRepository:    userRepository,
		hub:               hub,
	}
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func toResponse(m chat.Message) chat.MessageResponse {
	return chat.MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		FileURL:     m.FileURL,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

// Send implements chat.ChatService. The message is committed to the
// store first; the live broadcast afterwards is best-effort and a
// dropped event is recovered through History on reconnect.
func (s *ChatServiceImpl) Send(ctx context.Context, req chat.SendMessageRequest) (chat.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.MessageResponse{}, err
	}

	senderID, err := userIDFromClaims(ctx)
	if err != nil {
		return chat.MessageResponse{}, err
	}

	recipient, err := s.UserRepository.GetByID(ctx, req.RecipientID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return chat.MessageResponse{}, chat.ErrRecipientNotFound
		}
		return chat.MessageResponse{}, fmt.Errorf("failed to get recipient: %w", err)
	}

	sender, err := s.UserRepository.GetByID(ctx, senderID)
	if err != nil {
		return chat.MessageResponse{}, fmt.Errorf("failed to get sender: %w", err)
	}

	created, err := s.MessageRepository.Create(ctx, chat.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Body:        req.Body,
		FileURL:     req.FileURL,
	})
	if err != nil {
		return chat.MessageResponse{}, err
	}

	created.SenderName = &sender.Name
	response := toResponse(created)

	s.hub.PublishToMany([]string{recipient.ID, senderID}, sse.Event{
		Event: "chat.message",
		Data:  response,
	})

	return response, nil
}

// History implements chat.ChatService.
func (s *ChatServiceImpl) History(ctx context.Context, filter chat.HistoryFilter) ([]chat.MessageResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.MessageRepository.ListConversation(ctx, userID, filter.PeerID, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	responses := make([]chat.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, toResponse(m))
	}
	return responses, nil
}

// Subscribe implements chat.ChatService.
func (s *ChatServiceImpl) Subscribe(ctx context.Context, userID string) (chan sse.Event, func()) {
	return s.hub.Subscribe(userID)
}
