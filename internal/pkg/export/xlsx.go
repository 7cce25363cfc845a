package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/report"
)

// AttendanceXLSX renders a monthly attendance report as an xlsx
// workbook and returns the raw bytes.
func AttendanceXLSX(r report.MonthlyAttendanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Header block
	f.SetCellValue(sheet, "A1", "Employee")
	f.SetCellValue(sheet, "B1", r.UserName)
	f.SetCellValue(sheet, "A2", "Period")
	f.SetCellValue(sheet, "B2", fmt.Sprintf("%s to %s", r.PeriodStart, r.PeriodEnd))
	f.SetCellValue(sheet, "A3", "Days present")
	f.SetCellValue(sheet, "B3", r.DaysPresent)
	f.SetCellValue(sheet, "A4", "Days late")
	f.SetCellValue(sheet, "B4", r.DaysLate)
	f.SetCellValue(sheet, "A5", "Total worked")
	f.SetCellValue(sheet, "B5", r.TotalWorked)

	// Table header
	headers := []string{"Date", "Punch In", "Punch Out", "Status", "Worked"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 7)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range r.Rows {
		rowIdx := 8 + i
		values := []interface{}{row.Date, row.PunchIn, row.PunchOut, row.Status, row.Worked}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell name: %w", err)
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
