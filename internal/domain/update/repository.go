package update

import (
	"context"
)

// UpdateRepository defines data access methods for daily updates.
type UpdateRepository interface {
	Create(ctx context.Context, u DailyUpdate) (DailyUpdate, error)

	GetByID(ctx context.Context, id string) (DailyUpdate, error)

	// List returns updates matching the filter, newest first, with
	// total count for pagination. An empty UserID matches everyone.
	List(ctx context.Context, filter ListFilter) ([]DailyUpdate, int64, error)

	// ListForSummary returns an employee's updates in a date range
	// without pagination; the service aggregates them in memory.
	ListForSummary(ctx context.Context, userID string, startDate, endDate string) ([]DailyUpdate, error)

	// Review records a decision. The UPDATE is conditional on
	// approval_status = 'pending' so a decided update cannot be
	// re-decided; ErrUpdateAlreadyReviewed is returned when the row
	// exists but was already decided.
	Review(ctx context.Context, id string, status ApprovalStatus, reviewerID string, feedback string) (DailyUpdate, error)
}
