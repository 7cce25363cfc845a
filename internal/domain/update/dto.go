package update

import (
	"mime/multipart"
	"strings"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/validator"
)

type SubmitUpdateRequest struct {
	ProjectID  *string `json:"project_id"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Narrative  string  `json:"narrative"`
	HoursSpent float64 `json:"hours_spent"`
	TargetDate *string `json:"target_date"`

	ImageURL   *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *SubmitUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Narrative) {
		errs = append(errs, validator.ValidationError{
			Field:   "narrative",
			Message: "narrative is required",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, ok := project.ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown status value",
		})
	}

	if r.ProjectID == nil && validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required when no project is linked",
		})
	}

	if r.HoursSpent < 0 || r.HoursSpent > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_spent",
			Message: "hours_spent must be between 0 and 24",
		})
	}

	if r.TargetDate != nil && *r.TargetDate != "" {
		if _, ok := validator.IsValidDate(*r.TargetDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "target_date",
				Message: "target_date must be YYYY-MM-DD",
			})
		}
	}

	if r.FileHeader != nil {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "image",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 {
			errs = append(errs, validator.ValidationError{
				Field:   "image",
				Message: "image size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewUpdateRequest struct {
	ID       string `json:"-"`
	Action   string `json:"action"` // approve | reject
	Feedback string `json:"feedback"`
}

// Validate checks feedback only; the action verb is checked by the
// service, which owns the approve/reject vocabulary.
func (r *ReviewUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Feedback) {
		errs = append(errs, validator.ValidationError{
			Field:   "feedback",
			Message: "feedback is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	UserID    string
	StartDate string
	EndDate   string
	Status    string
	Page      int
	Limit     int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}
	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       *string `json:"user_name,omitempty"`
	ProjectID      *string `json:"project_id,omitempty"`
	ProjectTitle   *string `json:"project_title,omitempty"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	Narrative      string  `json:"narrative"`
	ImageURL       *string `json:"image_url,omitempty"`
	HoursSpent     float64 `json:"hours_spent"`
	TargetDate     *string `json:"target_date,omitempty"`
	ApprovalStatus string  `json:"approval_status"`
	ReviewedBy     *string `json:"reviewed_by,omitempty"`
	ReviewFeedback *string `json:"review_feedback,omitempty"`
	ReviewedAt     *string `json:"reviewed_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type ListUpdatesResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Updates    []UpdateResponse `json:"updates"`
}

// SummaryRequest asks for an employee's aggregated updates over a range.
type SummaryRequest struct {
	UserID    string
	StartDate string
	EndDate   string
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProjectSummary struct {
	ProjectID    *string        `json:"project_id,omitempty"`
	ProjectTitle string         `json:"project_title"`
	TotalHours   float64        `json:"total_hours"`
	StatusCounts map[string]int `json:"status_counts"`
	UpdateCount  int            `json:"update_count"`
}

type SummaryResponse struct {
	UserID       string           `json:"user_id"`
	StartDate    string           `json:"start_date,omitempty"`
	EndDate      string           `json:"end_date,omitempty"`
	TotalHours   float64          `json:"total_hours"`
	TotalUpdates int              `json:"total_updates"`
	DaysActive   int              `json:"days_active"`
	AvgHoursDay  float64          `json:"avg_hours_per_day"`
	Projects     []ProjectSummary `json:"projects"`
}
