package user

import (
	"context"
	"io"
)

// UserService defines profile and team management business logic.
type UserService interface {
	// GetMe returns the authenticated user's profile.
	GetMe(ctx context.Context) (UserResponse, error)

	// GetDashboard resolves which dashboard the authenticated user's
	// role maps to.
	GetDashboard(ctx context.Context) (DashboardResponse, error)

	// UpdateProfile changes the authenticated user's own fields.
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)

	// UploadAvatar stores a new profile picture and returns its URL.
	UploadAvatar(ctx context.Context, file io.Reader, filename string) (UserResponse, error)

	// AssignTeam sets an employee's manager and team lead (manager only).
	AssignTeam(ctx context.Context, req AssignTeamRequest) (UserResponse, error)

	// ListTeam returns the authenticated manager's direct reports.
	ListTeam(ctx context.Context) ([]UserResponse, error)

	// ListAll returns every user (manager view).
	ListAll(ctx context.Context) ([]UserResponse, error)
}
