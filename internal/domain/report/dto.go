package report

import (
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/validator"
)

type MonthlyAttendanceReportRequest struct {
	UserID string `json:"user_id"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceReportRow struct {
	Date          string `json:"date"`
	PunchIn       string `json:"punch_in"`
	PunchOut      string `json:"punch_out,omitempty"`
	Status        string `json:"status"`
	WorkedMinutes int    `json:"worked_minutes"`
	Worked        string `json:"worked"`
}

type MonthlyAttendanceReport struct {
	UserID       string                `json:"user_id"`
	UserName     string                `json:"user_name"`
	PeriodMonth  int                   `json:"period_month"`
	PeriodYear   int                   `json:"period_year"`
	PeriodStart  string                `json:"period_start"`
	PeriodEnd    string                `json:"period_end"`
	GeneratedAt  string                `json:"generated_at"`
	DaysPresent  int                   `json:"days_present"`
	DaysLate     int                   `json:"days_late"`
	TotalMinutes int                   `json:"total_minutes"`
	TotalWorked  string                `json:"total_worked"`
	Rows         []AttendanceReportRow `json:"rows"`
}
