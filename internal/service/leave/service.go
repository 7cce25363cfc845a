package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/leave"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/email"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	user.UserRepository
	emailService email.EmailService
}

func NewLeaveService(leaveRepository leave.LeaveRepository, userRepository user.UserRepository, emailService email.EmailService) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepository,
		UserRepository:  userRepository,
		emailService:    emailService,
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

func toResponse(l leave.LeaveRequest) leave.LeaveResponse {
	var reviewedAt *string
	if l.ReviewedAt != nil {
		formatted := l.ReviewedAt.Format(time.RFC3339)
		reviewedAt = &formatted
	}

	return leave.LeaveResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		UserName:       l.UserName,
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		Days:           l.Days(),
		Reason:         l.Reason,
		Status:         string(l.Status),
		ReviewedBy:     l.ReviewedBy,
		ReviewFeedback: l.ReviewFeedback,
		ReviewedAt:     reviewedAt,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.LeaveRepository.Create(ctx, leave.LeaveRequest{
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    leave.LeaveStatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toResponse(created), nil
}

// Review implements leave.LeaveService.
func (s *LeaveServiceImpl) Review(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	reviewerID, err := userIDFromClaims(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	status := leave.LeaveStatusApproved
	if req.Action == "reject" {
		status = leave.LeaveStatusRejected
	}

	var feedback *string
	if req.Feedback != "" {
		feedback = &req.Feedback
	}

	reviewed, err := s.LeaveRepository.Review(ctx, req.ID, status, reviewerID, feedback)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyDecision(ctx, reviewed, reviewerID)

	return toResponse(reviewed), nil
}

// notifyDecision emails the employee about the outcome. Failures are
// logged, not returned.
func (s *LeaveServiceImpl) notifyDecision(ctx context.Context, l leave.LeaveRequest, reviewerID string) {
	employee, err := s.UserRepository.GetByID(ctx, l.UserID)
	if err != nil {
		slog.Warn("failed to load employee for leave notification", "error", err, "leave_id", l.ID)
		return
	}

	reviewer, err := s.UserRepository.GetByID(ctx, reviewerID)
	if err != nil {
		slog.Warn("failed to load reviewer for leave notification", "error", err, "leave_id", l.ID)
		return
	}

	err = s.emailService.SendLeaveDecision(
		employee.Email, employee.Name, reviewer.Name,
		l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"),
		string(l.Status), l.ReviewFeedback,
	)
	if err != nil {
		slog.Warn("failed to send leave notification", "error", err, "leave_id", l.ID)
	}
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.LeaveResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	leaves, err := s.LeaveRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toResponse(l))
	}
	return responses, nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	leaves, err := s.LeaveRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toResponse(l))
	}
	return responses, nil
}
