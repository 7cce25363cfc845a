package user

import (
	"context"
	"fmt"
	"io"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/service/file"
)

type UserServiceImpl struct {
	user.UserRepository
	fileService file.FileService
}

func NewUserService(userRepository user.UserRepository, fileService file.FileService) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		fileService:    fileService,
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

// GetMe implements user.UserService.
func (s *UserServiceImpl) GetMe(ctx context.Context) (user.UserResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// GetDashboard implements user.UserService. The dashboard is resolved
// from the stored role, not the token, so a role change applies without
// waiting for the token to rotate.
func (s *UserServiceImpl) GetDashboard(ctx context.Context) (user.DashboardResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return user.DashboardResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.DashboardResponse{}, err
	}

	return user.DashboardResponse{
		Role:      string(userData.Role),
		Dashboard: string(user.DashboardFor(userData.Role)),
	}, nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		userData.Name = *req.Name
	}
	if req.AvatarURL != nil {
		userData.AvatarURL = req.AvatarURL
	}

	if err := s.UserRepository.Update(ctx, userData); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// UploadAvatar implements user.UserService.
func (s *UserServiceImpl) UploadAvatar(ctx context.Context, fileReader io.Reader, filename string) (user.UserResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	url, err := s.fileService.UploadAvatar(ctx, userID, fileReader, filename)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	userData.AvatarURL = &url
	if err := s.UserRepository.Update(ctx, userData); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// AssignTeam implements user.UserService.
func (s *UserServiceImpl) AssignTeam(ctx context.Context, req user.AssignTeamRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.ManagerID != nil {
		manager, err := s.UserRepository.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return user.UserResponse{}, err
		}
		if !manager.IsManager() {
			return user.UserResponse{}, user.ErrManagerAccessRequired
		}
		userData.ManagerID = req.ManagerID
	}

	if req.TeamLeadID != nil {
		lead, err := s.UserRepository.GetByID(ctx, *req.TeamLeadID)
		if err != nil {
			return user.UserResponse{}, err
		}
		if !lead.IsTeamLead() {
			return user.UserResponse{}, user.ErrTeamLeadAccessRequired
		}
		userData.TeamLeadID = req.TeamLeadID
	}

	if err := s.UserRepository.Update(ctx, userData); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// ListTeam implements user.UserService.
func (s *UserServiceImpl) ListTeam(ctx context.Context) ([]user.UserResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	team, err := s.UserRepository.ListByManager(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(team))
	for _, member := range team {
		responses = append(responses, user.ToResponse(member))
	}
	return responses, nil
}

// ListAll implements user.UserService.
func (s *UserServiceImpl) ListAll(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}
