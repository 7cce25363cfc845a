package project

import (
	"mime/multipart"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/validator"
)

type CreateProjectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
	AssigneeID  string  `json:"assignee_id"`
}

func (r *CreateProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if validator.IsEmpty(r.AssigneeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignee_id",
			Message: "assignee_id is required",
		})
	}
	if r.Deadline != nil && *r.Deadline != "" {
		if _, ok := validator.IsValidDate(*r.Deadline); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "deadline",
				Message: "deadline must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID      string  `json:"-"`
	Status  string  `json:"status"`
	Comment *string `json:"comment"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown status value",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateTaskRequest struct {
	ProjectID  *string `json:"project_id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	AssigneeID string  `json:"assignee_id"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if validator.IsEmpty(r.AssigneeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignee_id",
			Message: "assignee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddTaskCommentRequest struct {
	TaskID         string   `json:"-"`
	Text           string   `json:"text"`
	AttachmentURLs []string `json:"attachment_urls"`

	// Files uploaded alongside the comment; stored and appended to
	// AttachmentURLs by the service.
	Files []*multipart.FileHeader `json:"-"`
}

func (r *AddTaskCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProjectResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Deadline     *string `json:"deadline,omitempty"`
	AssigneeID   string  `json:"assignee_id"`
	AssigneeName *string `json:"assignee_name,omitempty"`
	CreatedBy    string  `json:"created_by"`
	Status       string  `json:"status"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type TaskCommentResponse struct {
	ID             string   `json:"id"`
	AuthorID       string   `json:"author_id"`
	AuthorName     *string  `json:"author_name,omitempty"`
	Text           string   `json:"text"`
	AttachmentURLs []string `json:"attachment_urls,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

type TaskResponse struct {
	ID           string                `json:"id"`
	ProjectID    *string               `json:"project_id,omitempty"`
	Title        string                `json:"title"`
	Content      string                `json:"content"`
	AssigneeID   string                `json:"assignee_id"`
	AssigneeName *string               `json:"assignee_name,omitempty"`
	CreatedBy    string                `json:"created_by"`
	Status       string                `json:"status"`
	Comments     []TaskCommentResponse `json:"comments,omitempty"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
}
