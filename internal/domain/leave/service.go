package leave

import "context"

// LeaveService defines business logic for leave requests.
type LeaveService interface {
	// Submit creates a pending request for the authenticated employee.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)

	// Review approves or rejects a pending request (manager only,
	// one-shot).
	Review(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)

	ListMine(ctx context.Context) ([]LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)
}
