package project

import "time"

type Project struct {
	ID          string
	Title       string
	Description string
	Deadline    *time.Time
	AssigneeID  string
	CreatedBy   string
	Status      Status
	Comment     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for list views
	AssigneeName *string
}

// Task is either a step of a project or a standalone team-lead
// assignment (ProjectID nil).
type Task struct {
	ID         string
	ProjectID  *string
	Title      string
	Content    string
	AssigneeID string
	CreatedBy  string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Comments []TaskComment

	// Joined for list views
	AssigneeName *string
}

// TaskComment is append-only; there is no edit or delete.
type TaskComment struct {
	ID             string
	TaskID         string
	AuthorID       string
	Text           string
	AttachmentURLs []string
	CreatedAt      time.Time

	AuthorName *string
}
