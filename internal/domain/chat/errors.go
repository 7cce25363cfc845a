package chat

import "errors"

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrEmptyMessage      = errors.New("message must have text or a file")
)
