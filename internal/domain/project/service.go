package project

import "context"

// ProjectService defines business logic for the assignment ledger.
type ProjectService interface {
	// CreateProject assigns a new project to an employee (manager only).
	// Projects start in StatusNotStarted.
	CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)

	GetProject(ctx context.Context, id string) (ProjectResponse, error)

	// ListMyProjects returns projects assigned to the caller.
	ListMyProjects(ctx context.Context) ([]ProjectResponse, error)

	// ListCreatedProjects returns projects the calling manager created.
	ListCreatedProjects(ctx context.Context) ([]ProjectResponse, error)

	// UpdateProjectStatus transitions a project's status. Allowed for
	// the assignee (self-report) or a manager (override); no
	// transition is blocked.
	UpdateProjectStatus(ctx context.Context, req UpdateStatusRequest) (ProjectResponse, error)

	// CreateTask creates a project step or a standalone assignment
	// (manager or team lead).
	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	GetTask(ctx context.Context, id string) (TaskResponse, error)
	ListMyTasks(ctx context.Context) ([]TaskResponse, error)

	// UpdateTaskStatus transitions a task's status (assignee or
	// manager/team lead).
	UpdateTaskStatus(ctx context.Context, req UpdateStatusRequest) (TaskResponse, error)

	// AddTaskComment appends a comment with optional attachments.
	AddTaskComment(ctx context.Context, req AddTaskCommentRequest) (TaskCommentResponse, error)
}
