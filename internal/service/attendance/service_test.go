package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/config"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/attendance"
)

// fakeAttendanceRepository keeps records in memory and enforces the same
// one-open-record rule as the conditional SQL.
type fakeAttendanceRepository struct {
	records []attendance.Attendance
	nextID  int
}

func (f *fakeAttendanceRepository) PunchIn(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.UserID == record.UserID && r.WorkDate.Equal(record.WorkDate) && r.PunchOut == nil {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
	}
	f.nextID++
	record.ID = fmt.Sprintf("att-%d", f.nextID)
	record.CreatedAt = record.PunchIn
	record.UpdatedAt = record.PunchIn
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepository) PunchOut(ctx context.Context, userID string, workDate time.Time, punchOut time.Time, workedMinutes int) (attendance.Attendance, error) {
	for i, r := range f.records {
		if r.UserID == userID && r.WorkDate.Equal(workDate) && r.PunchOut == nil {
			f.records[i].PunchOut = &punchOut
			f.records[i].WorkedMinutes = &workedMinutes
			return f.records[i], nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNoOpenSession
}

func (f *fakeAttendanceRepository) GetOpenSession(ctx context.Context, userID string, workDate time.Time) (*attendance.Attendance, error) {
	for i, r := range f.records {
		if r.UserID == userID && r.WorkDate.Equal(workDate) && r.PunchOut == nil {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.UserID == userID && !r.WorkDate.Before(from) && !r.WorkDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestService(repo *fakeAttendanceRepository) *AttendanceServiceImpl {
	cfg := &config.Config{
		Attendance: config.AttendanceConfig{
			WorkdayStart: "09:15",
			Timezone:     "UTC",
		},
	}
	return &AttendanceServiceImpl{AttendanceRepository: repo, cfg: cfg}
}

func contextWithClaims(t *testing.T, userID string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tokenString, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "employee",
	})
	require.NoError(t, err)

	token, err := tokenAuth.Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestStatusFor_BoundaryIsOnTime(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepository{})

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusPresent, svc.statusFor(day.Add(8*time.Hour+45*time.Minute)))
	assert.Equal(t, attendance.StatusPresent, svc.statusFor(day.Add(9*time.Hour+15*time.Minute)))
	assert.Equal(t, attendance.StatusLate, svc.statusFor(day.Add(9*time.Hour+16*time.Minute)))
}

func TestPunchIn_SecondPunchSameDayFails(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := newTestService(repo)
	ctx := contextWithClaims(t, "user-1")

	first, err := svc.PunchIn(ctx)
	require.NoError(t, err)
	assert.True(t, first.Open)

	_, err = svc.PunchIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
	assert.Len(t, repo.records, 1)
}

func TestPunchOut_ClosesOpenSession(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := newTestService(repo)
	ctx := contextWithClaims(t, "user-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	closed, err := svc.PunchOut(ctx)
	require.NoError(t, err)
	assert.False(t, closed.Open)
	assert.NotNil(t, repo.records[0].PunchOut)

	// The session is closed now, so another punch-out has nothing to act on.
	_, err = svc.PunchOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestPunchOut_WithoutOpenSession(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepository{})
	ctx := contextWithClaims(t, "user-1")

	_, err := svc.PunchOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestPunchOut_AllowsNewPunchInAfterwards(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := newTestService(repo)
	ctx := contextWithClaims(t, "user-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)
	_, err = svc.PunchOut(ctx)
	require.NoError(t, err)

	// A closed record no longer blocks the guard.
	_, err = svc.PunchIn(ctx)
	require.NoError(t, err)
	assert.Len(t, repo.records, 2)
}
