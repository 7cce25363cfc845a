package update

import (
	"time"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
)

// ApprovalStatus is the manager-review state of a daily update. It
// starts at pending and moves exactly once to approved or rejected.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type DailyUpdate struct {
	ID         string
	UserID     string
	ProjectID  *string
	Title      string // free-text fallback when no project is linked
	Status     project.Status
	Narrative  string
	ImageURL   *string
	HoursSpent float64
	TargetDate *time.Time

	ApprovalStatus ApprovalStatus
	ReviewedBy     *string
	ReviewFeedback *string
	ReviewedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for manager views
	UserName     *string
	ProjectTitle *string
}

// Decided reports whether the update has already been approved or rejected.
func (u *DailyUpdate) Decided() bool {
	return u.ApprovalStatus != ApprovalPending
}
