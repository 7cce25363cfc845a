package project

import "context"

// ProjectRepository defines data access methods for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)

	// ListByAssignee returns projects assigned to an employee, newest
	// first.
	ListByAssignee(ctx context.Context, assigneeID string) ([]Project, error)

	// ListByCreator returns projects a manager created.
	ListByCreator(ctx context.Context, creatorID string) ([]Project, error)

	// UpdateStatus sets status and optional comment.
	UpdateStatus(ctx context.Context, id string, status Status, comment *string) error
}

// TaskRepository defines data access methods for tasks and their
// append-only comments.
type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)

	ListByAssignee(ctx context.Context, assigneeID string) ([]Task, error)
	ListByProject(ctx context.Context, projectID string) ([]Task, error)

	UpdateStatus(ctx context.Context, id string, status Status) error

	AddComment(ctx context.Context, c TaskComment) (TaskComment, error)
	ListComments(ctx context.Context, taskID string) ([]TaskComment, error)
}
