package leave

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID        string
	UserID    string
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    LeaveStatus

	ReviewedBy     *string
	ReviewFeedback *string
	ReviewedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for manager views
	UserName *string
}

// Days returns the inclusive length of the requested range.
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
