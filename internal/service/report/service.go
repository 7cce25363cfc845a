package report

import (
	"context"
	"fmt"
	"time"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/attendance"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/report"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/export"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
}

func NewReportService(attendanceRepository attendance.AttendanceRepository, userRepository user.UserRepository) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
	}
}

// MonthlyAttendance implements report.ReportService.
func (s *ReportServiceImpl) MonthlyAttendance(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	employee, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.ListByUserBetween(ctx, req.UserID, from, to)
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("failed to list attendance for report: %w", err)
	}

	result := report.MonthlyAttendanceReport{
		UserID:      employee.ID,
		UserName:    employee.Name,
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: from.Format("2006-01-02"),
		PeriodEnd:   to.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, att := range records {
		minutes := 0
		if att.WorkedMinutes != nil {
			minutes = *att.WorkedMinutes
		}

		punchOut := ""
		if att.PunchOut != nil {
			punchOut = att.PunchOut.Format("15:04")
		}

		result.Rows = append(result.Rows, report.AttendanceReportRow{
			Date:          att.WorkDate.Format("2006-01-02"),
			PunchIn:       att.PunchIn.Format("15:04"),
			PunchOut:      punchOut,
			Status:        att.Status,
			WorkedMinutes: minutes,
			Worked:        attendance.FormatDuration(minutes),
		})

		// A late day is still an attended day; DaysLate is the subset.
		result.DaysPresent++
		if att.Status == attendance.StatusLate {
			result.DaysLate++
		}
		result.TotalMinutes += minutes
	}

	result.TotalWorked = attendance.FormatDuration(result.TotalMinutes)

	return result, nil
}

// MonthlyAttendanceXLSX implements report.ReportService.
func (s *ReportServiceImpl) MonthlyAttendanceXLSX(ctx context.Context, req report.MonthlyAttendanceReportRequest) ([]byte, string, error) {
	result, err := s.MonthlyAttendance(ctx, req)
	if err != nil {
		return nil, "", err
	}

	data, err := export.AttendanceXLSX(result)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render attendance report: %w", err)
	}

	filename := fmt.Sprintf("attendance-%s-%04d-%02d.xlsx", result.UserID, result.PeriodYear, result.PeriodMonth)
	return data, filename, nil
}
