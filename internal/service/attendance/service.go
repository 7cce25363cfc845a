package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/config"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/attendance"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	cfg *config.Config
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, cfg *config.Config) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		cfg:                  cfg,
	}
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// workClock returns the current local time and the local work date
// (midnight) in the configured timezone.
func (a *AttendanceServiceImpl) workClock() (now time.Time, workDate time.Time) {
	loc, err := time.LoadLocation(a.cfg.Attendance.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now = time.Now().In(loc)
	workDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return now, workDate
}

// statusFor derives present or late from the punch-in time. The boundary
// itself is still on time: only punches strictly after it are late.
func (a *AttendanceServiceImpl) statusFor(punchIn time.Time) string {
	hour, minute := a.cfg.WorkdayStartClock()
	start := time.Date(punchIn.Year(), punchIn.Month(), punchIn.Day(), hour, minute, 0, 0, punchIn.Location())
	if punchIn.After(start) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

func toResponse(att attendance.Attendance, now time.Time) attendance.AttendanceResponse {
	minutes := att.DurationMinutes(now)
	if att.WorkedMinutes != nil {
		minutes = *att.WorkedMinutes
	}

	var punchOut *string
	if att.PunchOut != nil {
		formatted := att.PunchOut.Format(time.RFC3339)
		punchOut = &formatted
	}

	return attendance.AttendanceResponse{
		ID:            att.ID,
		UserID:        att.UserID,
		UserName:      att.UserName,
		Date:          att.WorkDate.Format("2006-01-02"),
		PunchIn:       att.PunchIn.Format(time.RFC3339),
		PunchOut:      punchOut,
		Status:        att.Status,
		Open:          att.Open(),
		WorkedMinutes: minutes,
		Worked:        attendance.FormatDuration(minutes),
	}
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, workDate := a.workClock()

	record := attendance.Attendance{
		UserID:   userID,
		WorkDate: workDate,
		PunchIn:  now,
		Status:   a.statusFor(now),
	}

	created, err := a.AttendanceRepository.PunchIn(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(created, now), nil
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, workDate := a.workClock()

	open, err := a.AttendanceRepository.GetOpenSession(ctx, userID, workDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if open == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenSession
	}

	// The UPDATE is conditional on the record still being open, so a
	// concurrent punch-out loses cleanly with ErrNoOpenSession.
	closed, err := a.AttendanceRepository.PunchOut(ctx, userID, workDate, now, open.DurationMinutes(now))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(closed, now), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	now, workDate := a.workClock()

	filter := attendance.HistoryFilter{
		StartDate: workDate.Format("2006-01-02"),
		EndDate:   workDate.Format("2006-01-02"),
		Page:      1,
		Limit:     1,
	}

	records, _, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	resp := toResponse(records[0], now)
	return &resp, nil
}

// GetMyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return a.history(ctx, userID, filter)
}

// GetEmployeeHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetEmployeeHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	return a.history(ctx, userID, filter)
}

func (a *AttendanceServiceImpl) history(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	now, _ := a.workClock()
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, toResponse(att, now))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}
