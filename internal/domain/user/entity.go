package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	ManagerID    *string
	TeamLeadID   *string

	OAuthProvider   *string
	OAuthProviderID *string

	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManager checks if the user can approve updates and leave requests.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsTeamLead checks if the user can assign standalone tasks.
func (u *User) IsTeamLead() bool {
	return u.Role == RoleTeamLead
}

// CanAssignWork checks if the user may create projects or tasks.
func (u *User) CanAssignWork() bool {
	return u.Role == RoleManager || u.Role == RoleTeamLead
}
