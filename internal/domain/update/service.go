package update

import "context"

// UpdateService defines business logic for daily updates.
type UpdateService interface {
	// Submit creates a pending update for the authenticated employee.
	Submit(ctx context.Context, req SubmitUpdateRequest) (UpdateResponse, error)

	// Review approves or rejects a pending update. Manager only;
	// feedback is mandatory and the transition is one-shot.
	Review(ctx context.Context, req ReviewUpdateRequest) (UpdateResponse, error)

	Get(ctx context.Context, id string) (UpdateResponse, error)

	// ListMine returns the authenticated employee's updates.
	ListMine(ctx context.Context, filter ListFilter) (ListUpdatesResponse, error)

	// ListAll returns updates across employees (manager view).
	ListAll(ctx context.Context, filter ListFilter) (ListUpdatesResponse, error)

	// Summarize aggregates an employee's updates by project and status
	// over a date range (manager view).
	Summarize(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}
