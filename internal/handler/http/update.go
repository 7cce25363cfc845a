package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/update"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/handler/http/response"
)

type UpdateHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type UpdateHandlerImpl struct {
	updateService update.UpdateService
}

func NewUpdateHandler(updateService update.UpdateService) UpdateHandler {
	return &UpdateHandlerImpl{updateService: updateService}
}

// Submit implements UpdateHandler. The request is multipart when a
// screenshot is attached, plain JSON otherwise.
func (h *UpdateHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req update.SubmitUpdateRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		// Parse multipart form (max 10MB)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("image")
		if err != nil && err != http.ErrMissingFile {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if err == nil {
			defer file.Close()
			req.File = file
			req.FileHeader = fileHeader
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Submit decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.updateService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Daily update submitted", result)
}

// Review implements UpdateHandler.
func (h *UpdateHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req update.ReviewUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "updateID")

	result, err := h.updateService.Review(r.Context(), req)
	if err != nil {
		slog.Error("Review service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily update reviewed", result)
}

// Get implements UpdateHandler.
func (h *UpdateHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.updateService.Get(r.Context(), chi.URLParam(r, "updateID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func listFilterFromQuery(r *http.Request) update.ListFilter {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return update.ListFilter{
		UserID:    q.Get("user_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Status:    q.Get("status"),
		Page:      page,
		Limit:     limit,
	}
}

// ListMine implements UpdateHandler.
func (h *UpdateHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	list, err := h.updateService.ListMine(r.Context(), listFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Updates, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// ListAll implements UpdateHandler.
func (h *UpdateHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.updateService.ListAll(r.Context(), listFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Updates, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Summary implements UpdateHandler.
func (h *UpdateHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := update.SummaryRequest{
		UserID:    chi.URLParam(r, "userID"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	result, err := h.updateService.Summarize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
