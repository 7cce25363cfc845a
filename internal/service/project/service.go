package project

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/service/file"
)

type ProjectServiceImpl struct {
	project.ProjectRepository
	project.TaskRepository
	user.UserRepository
	fileService file.FileService
}

func NewProjectService(
	projectRepository project.ProjectRepository,
	taskRepository project.TaskRepository,
	userRepository user.UserRepository,
	fileService file.FileService,
) project.ProjectService {
	return &ProjectServiceImpl{
		ProjectRepository: projectRepository,
		TaskRepository:    taskRepository,
		UserRepository:    userRepository,
		fileService:       fileService,
	}
}

func claimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.ParseRole(roleStr), nil
}

func toProjectResponse(p project.Project) project.ProjectResponse {
	var deadline *string
	if p.Deadline != nil {
		formatted := p.Deadline.Format("2006-01-02")
		deadline = &formatted
	}

	return project.ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Deadline:     deadline,
		AssigneeID:   p.AssigneeID,
		AssigneeName: p.AssigneeName,
		CreatedBy:    p.CreatedBy,
		Status:       string(p.Status),
		Comment:      p.Comment,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func toCommentResponse(c project.TaskComment) project.TaskCommentResponse {
	return project.TaskCommentResponse{
		ID:             c.ID,
		AuthorID:       c.AuthorID,
		AuthorName:     c.AuthorName,
		Text:           c.Text,
		AttachmentURLs: c.AttachmentURLs,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}

func toTaskResponse(t project.Task) project.TaskResponse {
	comments := make([]project.TaskCommentResponse, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, toCommentResponse(c))
	}

	return project.TaskResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Content:      t.Content,
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
		CreatedBy:    t.CreatedBy,
		Status:       string(t.Status),
		Comments:     comments,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateProject implements project.ProjectService.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	creatorID, _, err := claimsFromContext(ctx)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	// The assignee must exist before work can land on them.
	assignee, err := s.UserRepository.GetByID(ctx, req.AssigneeID)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return project.ProjectResponse{}, fmt.Errorf("failed to parse deadline: %w", err)
		}
		deadline = &parsed
	}

	created, err := s.ProjectRepository.Create(ctx, project.Project{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		AssigneeID:  assignee.ID,
		CreatedBy:   creatorID,
		Status:      project.StatusNotStarted,
	})
	if err != nil {
		return project.ProjectResponse{}, err
	}

	created.AssigneeName = &assignee.Name
	return toProjectResponse(created), nil
}

// GetProject implements project.ProjectService.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, id string) (project.ProjectResponse, error) {
	p, err := s.ProjectRepository.GetByID(ctx, id)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return toProjectResponse(p), nil
}

// ListMyProjects implements project.ProjectService.
func (s *ProjectServiceImpl) ListMyProjects(ctx context.Context) ([]project.ProjectResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.ProjectRepository.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toProjectResponse(p))
	}
	return responses, nil
}

// ListCreatedProjects implements project.ProjectService.
func (s *ProjectServiceImpl) ListCreatedProjects(ctx context.Context) ([]project.ProjectResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.ProjectRepository.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toProjectResponse(p))
	}
	return responses, nil
}

// UpdateProjectStatus implements project.ProjectService.
func (s *ProjectServiceImpl) UpdateProjectStatus(ctx context.Context, req project.UpdateStatusRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	p, err := s.ProjectRepository.GetByID(ctx, req.ID)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	// Assignees report their own progress; managers can override.
	if p.AssigneeID != userID && role != user.RoleManager {
		return project.ProjectResponse{}, project.ErrNotAssignee
	}

	status, _ := project.ParseStatus(req.Status)

	if err := s.ProjectRepository.UpdateStatus(ctx, req.ID, status, req.Comment); err != nil {
		return project.ProjectResponse{}, err
	}

	return s.GetProject(ctx, req.ID)
}

// CreateTask implements project.ProjectService.
func (s *ProjectServiceImpl) CreateTask(ctx context.Context, req project.CreateTaskRequest) (project.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskResponse{}, err
	}

	creatorID, _, err := claimsFromContext(ctx)
	if err != nil {
		return project.TaskResponse{}, err
	}

	assignee, err := s.UserRepository.GetByID(ctx, req.AssigneeID)
	if err != nil {
		return project.TaskResponse{}, err
	}

	if req.ProjectID != nil {
		if _, err := s.ProjectRepository.GetByID(ctx, *req.ProjectID); err != nil {
			return project.TaskResponse{}, err
		}
	}

	created, err := s.TaskRepository.Create(ctx, project.Task{
		ProjectID:  req.ProjectID,
		Title:      req.Title,
		Content:    req.Content,
		AssigneeID: assignee.ID,
		CreatedBy:  creatorID,
		Status:     project.StatusNotStarted,
	})
	if err != nil {
		return project.TaskResponse{}, err
	}

	created.AssigneeName = &assignee.Name
	return toTaskResponse(created), nil
}

// GetTask implements project.ProjectService.
func (s *ProjectServiceImpl) GetTask(ctx context.Context, id string) (project.TaskResponse, error) {
	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return project.TaskResponse{}, err
	}

	comments, err := s.TaskRepository.ListComments(ctx, id)
	if err != nil {
		return project.TaskResponse{}, err
	}
	t.Comments = comments

	return toTaskResponse(t), nil
}

// ListMyTasks implements project.ProjectService.
func (s *ProjectServiceImpl) ListMyTasks(ctx context.Context) ([]project.TaskResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.TaskRepository.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]project.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}
	return responses, nil
}

// UpdateTaskStatus implements project.ProjectService.
func (s *ProjectServiceImpl) UpdateTaskStatus(ctx context.Context, req project.UpdateStatusRequest) (project.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskResponse{}, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return project.TaskResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return project.TaskResponse{}, err
	}

	if t.AssigneeID != userID && role != user.RoleManager && role != user.RoleTeamLead {
		return project.TaskResponse{}, project.ErrNotAssignee
	}

	status, _ := project.ParseStatus(req.Status)

	if err := s.TaskRepository.UpdateStatus(ctx, req.ID, status); err != nil {
		return project.TaskResponse{}, err
	}

	return s.GetTask(ctx, req.ID)
}

// AddTaskComment implements project.ProjectService.
func (s *ProjectServiceImpl) AddTaskComment(ctx context.Context, req project.AddTaskCommentRequest) (project.TaskCommentResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskCommentResponse{}, err
	}

	authorID, _, err := claimsFromContext(ctx)
	if err != nil {
		return project.TaskCommentResponse{}, err
	}

	if _, err := s.TaskRepository.GetByID(ctx, req.TaskID); err != nil {
		return project.TaskCommentResponse{}, err
	}

	attachmentURLs := req.AttachmentURLs
	for _, header := range req.Files {
		f, err := header.Open()
		if err != nil {
			return project.TaskCommentResponse{}, fmt.Errorf("failed to open attachment: %w", err)
		}
		url, err := s.fileService.UploadTaskAttachment(ctx, req.TaskID, f, header.Filename)
		f.Close()
		if err != nil {
			return project.TaskCommentResponse{}, fmt.Errorf("failed to upload attachment: %w", err)
		}
		attachmentURLs = append(attachmentURLs, url)
	}

	created, err := s.TaskRepository.AddComment(ctx, project.TaskComment{
		TaskID:         req.TaskID,
		AuthorID:       authorID,
		Text:           req.Text,
		AttachmentURLs: attachmentURLs,
	})
	if err != nil {
		return project.TaskCommentResponse{}, err
	}

	return toCommentResponse(created), nil
}
