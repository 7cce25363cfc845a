package leave

import "context"

// LeaveRepository defines data access methods for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, l LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	// ListPending returns pending requests across employees, oldest
	// first (manager queue).
	ListPending(ctx context.Context) ([]LeaveRequest, error)

	// Review records a decision; conditional on status = 'pending'.
	Review(ctx context.Context, id string, status LeaveStatus, reviewerID string, feedback *string) (LeaveRequest, error)
}
