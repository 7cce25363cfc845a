package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// PunchIn opens a work session for the authenticated employee.
	PunchIn(ctx context.Context) (AttendanceResponse, error)

	// PunchOut closes the open session and records worked minutes.
	PunchOut(ctx context.Context) (AttendanceResponse, error)

	// GetToday returns today's record for the authenticated employee,
	// with a live duration while the session is open.
	GetToday(ctx context.Context) (*AttendanceResponse, error)

	// GetMyHistory returns the authenticated employee's records.
	GetMyHistory(ctx context.Context, filter HistoryFilter) (ListAttendanceResponse, error)

	// GetEmployeeHistory returns another employee's records; callers
	// are restricted to managers by the router.
	GetEmployeeHistory(ctx context.Context, userID string, filter HistoryFilter) (ListAttendanceResponse, error)
}
