package chat

import (
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/validator"
)

type SendMessageRequest struct {
	RecipientID string  `json:"recipient_id"`
	Body        *string `json:"body"`
	FileURL     *string `json:"file_url"`
}

func (r *SendMessageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecipientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "recipient_id",
			Message: "recipient_id is required",
		})
	}

	hasBody := r.Body != nil && !validator.IsEmpty(*r.Body)
	hasFile := r.FileURL != nil && !validator.IsEmpty(*r.FileURL)
	if !hasBody && !hasFile {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "message must have text or a file",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MessageResponse struct {
	ID          string  `json:"id"`
	SenderID    string  `json:"sender_id"`
	SenderName  *string `json:"sender_name,omitempty"`
	RecipientID string  `json:"recipient_id"`
	Body        *string `json:"body,omitempty"`
	FileURL     *string `json:"file_url,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type HistoryFilter struct {
	PeerID string
	Limit  int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.PeerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "peer_id",
			Message: "peer_id is required",
		})
	}
	if f.Limit < 1 || f.Limit > 500 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
