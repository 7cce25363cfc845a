package update

import "errors"

var (
	ErrUpdateNotFound        = errors.New("daily update not found")
	ErrUpdateAlreadyReviewed = errors.New("daily update has already been approved or rejected")
	ErrInvalidReviewAction   = errors.New("review action must be approve or reject")
)
