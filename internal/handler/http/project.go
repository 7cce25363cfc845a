package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/handler/http/response"
)

type ProjectHandler interface {
	CreateProject(w http.ResponseWriter, r *http.Request)
	GetProject(w http.ResponseWriter, r *http.Request)
	ListMyProjects(w http.ResponseWriter, r *http.Request)
	ListCreatedProjects(w http.ResponseWriter, r *http.Request)
	UpdateProjectStatus(w http.ResponseWriter, r *http.Request)

	CreateTask(w http.ResponseWriter, r *http.Request)
	GetTask(w http.ResponseWriter, r *http.Request)
	ListMyTasks(w http.ResponseWriter, r *http.Request)
	UpdateTaskStatus(w http.ResponseWriter, r *http.Request)
	AddTaskComment(w http.ResponseWriter, r *http.Request)
}

type ProjectHandlerImpl struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) ProjectHandler {
	return &ProjectHandlerImpl{projectService: projectService}
}

// CreateProject implements ProjectHandler.
func (h *ProjectHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req project.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateProject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.projectService.CreateProject(r.Context(), req)
	if err != nil {
		slog.Error("CreateProject service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Project created", result)
}

// GetProject implements ProjectHandler.
func (h *ProjectHandlerImpl) GetProject(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectService.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListMyProjects implements ProjectHandler.
func (h *ProjectHandlerImpl) ListMyProjects(w http.ResponseWriter, r *http.Request) {
	results, err := h.projectService.ListMyProjects(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// ListCreatedProjects implements ProjectHandler.
func (h *ProjectHandlerImpl) ListCreatedProjects(w http.ResponseWriter, r *http.Request) {
	results, err := h.projectService.ListCreatedProjects(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// UpdateProjectStatus implements ProjectHandler.
func (h *ProjectHandlerImpl) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req project.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProjectStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "projectID")

	result, err := h.projectService.UpdateProjectStatus(r.Context(), req)
	if err != nil {
		slog.Error("UpdateProjectStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project status updated", result)
}

// CreateTask implements ProjectHandler.
func (h *ProjectHandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req project.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.projectService.CreateTask(r.Context(), req)
	if err != nil {
		slog.Error("CreateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created", result)
}

// GetTask implements ProjectHandler.
func (h *ProjectHandlerImpl) GetTask(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectService.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListMyTasks implements ProjectHandler.
func (h *ProjectHandlerImpl) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	results, err := h.projectService.ListMyTasks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// UpdateTaskStatus implements ProjectHandler.
func (h *ProjectHandlerImpl) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req project.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTaskStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "taskID")

	result, err := h.projectService.UpdateTaskStatus(r.Context(), req)
	if err != nil {
		slog.Error("UpdateTaskStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task status updated", result)
}

// AddTaskComment implements ProjectHandler. The request is multipart
// when files are attached, plain JSON otherwise.
func (h *ProjectHandlerImpl) AddTaskComment(w http.ResponseWriter, r *http.Request) {
	var req project.AddTaskCommentRequest

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

		if r.MultipartForm != nil {
			req.Files = r.MultipartForm.File["attachments"]
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("AddTaskComment decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.TaskID = chi.URLParam(r, "taskID")

	result, err := h.projectService.AddTaskComment(r.Context(), req)
	if err != nil {
		slog.Error("AddTaskComment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment added", result)
}
