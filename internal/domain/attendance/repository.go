package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// PunchIn inserts a new open record for the employee on the given
	// work date. The insert is conditional in SQL: it admits exactly one
	// open record per employee per day, so two concurrent punch-ins
	// cannot both succeed. Returns ErrAlreadyPunchedIn when an open
	// record already exists.
	PunchIn(ctx context.Context, record Attendance) (Attendance, error)

	// PunchOut closes today's open record atomically. Returns
	// ErrNoOpenSession when there is none.
	PunchOut(ctx context.Context, userID string, workDate time.Time, punchOut time.Time, workedMinutes int) (Attendance, error)

	// GetOpenSession returns today's open record, if any.
	GetOpenSession(ctx context.Context, userID string, workDate time.Time) (*Attendance, error)

	// ListByUser returns records for an employee, newest work date
	// first, with total count for pagination.
	ListByUser(ctx context.Context, userID string, filter HistoryFilter) ([]Attendance, int64, error)

	// ListByUserBetween returns closed and open records in a date range,
	// used by reports.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)
}
