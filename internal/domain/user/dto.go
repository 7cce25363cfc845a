package user

import (
	"time"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	ManagerID  *string `json:"manager_id,omitempty"`
	TeamLeadID *string `json:"team_lead_id,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// ToResponse maps a User to its API shape.
func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		ManagerID:  u.ManagerID,
		TeamLeadID: u.TeamLeadID,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

// DashboardResponse tells the frontend which dashboard to render.
type DashboardResponse struct {
	Role      string `json:"role"`
	Dashboard string `json:"dashboard"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AssignTeamRequest lets a manager set reporting lines for an employee.
type AssignTeamRequest struct {
	UserID     string  `json:"user_id"`
	ManagerID  *string `json:"manager_id"`
	TeamLeadID *string `json:"team_lead_id"`
}

func (r *AssignTeamRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
