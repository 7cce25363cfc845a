package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/report"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyAttendance(w http.ResponseWriter, r *http.Request)
	DownloadMonthlyAttendance(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func reportRequestFromQuery(r *http.Request) report.MonthlyAttendanceReportRequest {
	q := r.URL.Query()
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))

	return report.MonthlyAttendanceReportRequest{
		UserID: chi.URLParam(r, "userID"),
		Month:  month,
		Year:   year,
	}
}

// MonthlyAttendance implements ReportHandler.
func (h *ReportHandlerImpl) MonthlyAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.MonthlyAttendance(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// DownloadMonthlyAttendance implements ReportHandler. Streams the report
// back as a spreadsheet attachment.
func (h *ReportHandlerImpl) DownloadMonthlyAttendance(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.reportService.MonthlyAttendanceXLSX(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
