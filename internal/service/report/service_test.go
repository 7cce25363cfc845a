package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/report"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
)

// fakeAttendanceRepository serves a fixed set of closed records.
type fakeAttendanceRepository struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepository) PunchIn(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	return record, nil
}

func (f *fakeAttendanceRepository) PunchOut(ctx context.Context, userID string, workDate time.Time, punchOut time.Time, workedMinutes int) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrNoOpenSession
}

func (f *fakeAttendanceRepository) GetOpenSession(ctx context.Context, userID string, workDate time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeAttendanceRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	return f.records, nil
}

// fakeUserRepository returns a canned user for any ID.
type fakeUserRepository struct{}

func (fakeUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (fakeUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id, Name: "Test User", Email: id + "@example.com", Role: user.RoleEmployee}, nil
}

func (fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (fakeUserRepository) GetByOAuth(ctx context.Context, provider, providerID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (fakeUserRepository) Update(ctx context.Context, u user.User) error { return nil }

func (fakeUserRepository) ListByManager(ctx context.Context, managerID string) ([]user.User, error) {
	return nil, nil
}

func (fakeUserRepository) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func closedRecord(day int, status string, minutes int) attendance.Attendance {
	workDate := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
	punchIn := workDate.Add(9 * time.Hour)
	punchOut := punchIn.Add(time.Duration(minutes) * time.Minute)
	return attendance.Attendance{
		ID:            "att-" + string(rune('0'+day)),
		UserID:        "user-1",
		WorkDate:      workDate,
		PunchIn:       punchIn,
		PunchOut:      &punchOut,
		WorkedMinutes: &minutes,
		Status:        status,
	}
}

func TestMonthlyAttendance_LateDaysStillCountAsPresent(t *testing.T) {
	repo := &fakeAttendanceRepository{
		records: []attendance.Attendance{
			closedRecord(2, attendance.StatusPresent, 480),
			closedRecord(3, attendance.StatusLate, 450),
			closedRecord(4, attendance.StatusPresent, 510),
			closedRecord(5, attendance.StatusLate, 420),
		},
	}
	svc := &ReportServiceImpl{AttendanceRepository: repo, UserRepository: fakeUserRepository{}}

	result, err := svc.MonthlyAttendance(context.Background(), report.MonthlyAttendanceReportRequest{
		UserID: "user-1",
		Month:  3,
		Year:   2026,
	})
	require.NoError(t, err)

	// Every attended day counts as present; late days are a subset.
	assert.Equal(t, 4, result.DaysPresent)
	assert.Equal(t, 2, result.DaysLate)
	assert.Equal(t, 480+450+510+420, result.TotalMinutes)
	assert.Len(t, result.Rows, 4)
}

func TestMonthlyAttendance_EmptyMonth(t *testing.T) {
	svc := &ReportServiceImpl{AttendanceRepository: &fakeAttendanceRepository{}, UserRepository: fakeUserRepository{}}

	result, err := svc.MonthlyAttendance(context.Background(), report.MonthlyAttendanceReportRequest{
		UserID: "user-1",
		Month:  1,
		Year:   2026,
	})
	require.NoError(t, err)

	assert.Zero(t, result.DaysPresent)
	assert.Zero(t, result.DaysLate)
	assert.Equal(t, "0h 0m", result.TotalWorked)
	assert.Empty(t, result.Rows)
}
