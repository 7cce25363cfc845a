package report

import "context"

// ReportService builds manager-facing reports. Aggregation is read-side
// only; nothing derived is persisted.
type ReportService interface {
	MonthlyAttendance(ctx context.Context, req MonthlyAttendanceReportRequest) (MonthlyAttendanceReport, error)

	// MonthlyAttendanceXLSX renders the same report as a spreadsheet.
	MonthlyAttendanceXLSX(ctx context.Context, req MonthlyAttendanceReportRequest) ([]byte, string, error)
}
