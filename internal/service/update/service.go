package update

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/update"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/email"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/service/file"
)

type UpdateServiceImpl struct {
	update.UpdateRepository
	project.ProjectRepository
	user.UserRepository
	fileService  file.FileService
	emailService email.EmailService
}

func NewUpdateService(
	updateRepository update.UpdateRepository,
	projectRepository project.ProjectRepository,
	userRepository user.UserRepository,
	fileService file.FileService,
	emailService email.EmailService,
) update.UpdateService {
	return &UpdateServiceImpl{
		UpdateRepository:  updateRepository,
		ProjectRepository: projectRepository,
		UserRepository:    userRepository,
		fileService:       fileService,
		emailService:      emailService,
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

func toResponse(u update.DailyUpdate) update.UpdateResponse {
	var targetDate *string
	if u.TargetDate != nil {
		formatted := u.TargetDate.Format("2006-01-02")
		targetDate = &formatted
	}

	var reviewedAt *string
	if u.ReviewedAt != nil {
		formatted := u.ReviewedAt.Format(time.RFC3339)
		reviewedAt = &formatted
	}

	return update.UpdateResponse{
		ID:             u.ID,
		UserID:         u.UserID,
		UserName:       u.UserName,
		ProjectID:      u.ProjectID,
		ProjectTitle:   u.ProjectTitle,
		Title:          u.Title,
		Status:         string(u.Status),
		Narrative:      u.Narrative,
		ImageURL:       u.ImageURL,
		HoursSpent:     u.HoursSpent,
		TargetDate:     targetDate,
		ApprovalStatus: string(u.ApprovalStatus),
		ReviewedBy:     u.ReviewedBy,
		ReviewFeedback: u.ReviewFeedback,
		ReviewedAt:     reviewedAt,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

// Submit implements update.UpdateService.
func (s *UpdateServiceImpl) Submit(ctx context.Context, req update.SubmitUpdateRequest) (update.UpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return update.UpdateResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return update.UpdateResponse{}, err
	}

	status, _ := project.ParseStatus(req.Status)

	title := req.Title
	if req.ProjectID != nil {
		linked, err := s.ProjectRepository.GetByID(ctx, *req.ProjectID)
		if err != nil {
			return update.UpdateResponse{}, err
		}
		if title == "" {
			title = linked.Title
		}
	}

	var imageURL *string
	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadUpdateImage(ctx, userID, req.File, req.FileHeader.Filename)
		if err != nil {
			return update.UpdateResponse{}, fmt.Errorf("failed to upload update image: %w", err)
		}
		imageURL = &url
	}

	var targetDate *time.Time
	if req.TargetDate != nil && *req.TargetDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			return update.UpdateResponse{}, fmt.Errorf("failed to parse target date: %w", err)
		}
		targetDate = &parsed
	}

	created, err := s.UpdateRepository.Create(ctx, update.DailyUpdate{
		UserID:         userID,
		ProjectID:      req.ProjectID,
		Title:          title,
		Status:         status,
		Narrative:      req.Narrative,
		ImageURL:       imageURL,
		HoursSpent:     req.HoursSpent,
		TargetDate:     targetDate,
		ApprovalStatus: update.ApprovalPending,
	})
	if err != nil {
		return update.UpdateResponse{}, err
	}

	return toResponse(created), nil
}

// Review implements update.UpdateService.
func (s *UpdateServiceImpl) Review(ctx context.Context, req update.ReviewUpdateRequest) (update.UpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return update.UpdateResponse{}, err
	}

	reviewerID, err := userIDFromClaims(ctx)
	if err != nil {
		return update.UpdateResponse{}, err
	}

	var status update.ApprovalStatus
	switch req.Action {
	case "approve":
		status = update.ApprovalApproved
	case "reject":
		status = update.ApprovalRejected
	default:
		return update.UpdateResponse{}, update.ErrInvalidReviewAction
	}

	reviewed, err := s.UpdateRepository.Review(ctx, req.ID, status, reviewerID, req.Feedback)
	if err != nil {
		return update.UpdateResponse{}, err
	}

	s.notifyDecision(ctx, reviewed, reviewerID)

	return toResponse(reviewed), nil
}

// notifyDecision emails the employee about the review outcome. Failures
// are logged, not returned: the decision itself is already committed.
func (s *UpdateServiceImpl) notifyDecision(ctx context.Context, u update.DailyUpdate, reviewerID string) {
	employee, err := s.UserRepository.GetByID(ctx, u.UserID)
	if err != nil {
		slog.Warn("failed to load employee for review notification", "error", err, "update_id", u.ID)
		return
	}

	reviewer, err := s.UserRepository.GetByID(ctx, reviewerID)
	if err != nil {
		slog.Warn("failed to load reviewer for review notification", "error", err, "update_id", u.ID)
		return
	}

	feedback := ""
	if u.ReviewFeedback != nil {
		feedback = *u.ReviewFeedback
	}

	if err := s.emailService.SendUpdateDecision(employee.Email, employee.Name, reviewer.Name, u.Title, string(u.ApprovalStatus), feedback); err != nil {
		slog.Warn("failed to send review notification", "error", err, "update_id", u.ID)
	}
}

// Get implements update.UpdateService.
func (s *UpdateServiceImpl) Get(ctx context.Context, id string) (update.UpdateResponse, error) {
	u, err := s.UpdateRepository.GetByID(ctx, id)
	if err != nil {
		return update.UpdateResponse{}, err
	}
	return toResponse(u), nil
}

// ListMine implements update.UpdateService.
func (s *UpdateServiceImpl) ListMine(ctx context.Context, filter update.ListFilter) (update.ListUpdatesResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return update.ListUpdatesResponse{}, err
	}

	filter.UserID = userID
	return s.list(ctx, filter)
}

// ListAll implements update.UpdateService.
func (s *UpdateServiceImpl) ListAll(ctx context.Context, filter update.ListFilter) (update.ListUpdatesResponse, error) {
	return s.list(ctx, filter)
}

func (s *UpdateServiceImpl) list(ctx context.Context, filter update.ListFilter) (update.ListUpdatesResponse, error) {
	if err := filter.Validate(); err != nil {
		return update.ListUpdatesResponse{}, err
	}

	updates, total, err := s.UpdateRepository.List(ctx, filter)
	if err != nil {
		return update.ListUpdatesResponse{}, fmt.Errorf("failed to list daily updates: %w", err)
	}

	responses := make([]update.UpdateResponse, 0, len(updates))
	for _, u := range updates {
		responses = append(responses, toResponse(u))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return update.ListUpdatesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Updates:    responses,
	}, nil
}

// Summarize implements update.UpdateService.
func (s *UpdateServiceImpl) Summarize(ctx context.Context, req update.SummaryRequest) (update.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return update.SummaryResponse{}, err
	}

	updates, err := s.UpdateRepository.ListForSummary(ctx, req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return update.SummaryResponse{}, fmt.Errorf("failed to list daily updates for summary: %w", err)
	}

	return summarize(req, updates), nil
}

// summarize aggregates updates by project and status in memory. Updates
// without a linked project are grouped under their free-text title.
func summarize(req update.SummaryRequest, updates []update.DailyUpdate) update.SummaryResponse {
	resp := update.SummaryResponse{
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	days := make(map[string]struct{})
	projects := make(map[string]*update.ProjectSummary)
	var order []string

	for _, u := range updates {
		resp.TotalHours += u.HoursSpent
		resp.TotalUpdates++
		days[u.CreatedAt.Format("2006-01-02")] = struct{}{}

		key := "title:" + u.Title
		if u.ProjectID != nil {
			key = "project:" + *u.ProjectID
		}

		summary, ok := projects[key]
		if !ok {
			title := u.Title
			if u.ProjectTitle != nil {
				title = *u.ProjectTitle
			}
			summary = &update.ProjectSummary{
				ProjectID:    u.ProjectID,
				ProjectTitle: title,
				StatusCounts: make(map[string]int),
			}
			projects[key] = summary
			order = append(order, key)
		}

		summary.TotalHours += u.HoursSpent
		summary.UpdateCount++
		summary.StatusCounts[string(u.Status)]++
	}

	resp.DaysActive = len(days)
	if resp.DaysActive > 0 {
		resp.AvgHoursDay = resp.TotalHours / float64(resp.DaysActive)
	}

	sort.Strings(order)
	for _, key := range order {
		resp.Projects = append(resp.Projects, *projects[key])
	}

	return resp
}
