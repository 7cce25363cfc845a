package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/auth"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/jwt"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/oauth"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
	googleService oauth.GoogleService
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository, googleService oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
		googleService:  googleService,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issueTokens creates a token pair and stores the refresh token inside
// one transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenPair, error) {
	var pair auth.TokenPair

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		pair.AccessToken, pair.ExpiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		pair.RefreshToken, pair.RefreshExp, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.JWTRepository.CreateRefreshToken(txCtx, userData.ID, pair.RefreshToken, pair.RefreshExp); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenPair{}, err
	}

	return pair, nil
}

func (a *AuthServiceImpl) loginResponse(userData user.User, pair auth.TokenPair) auth.LoginResponse {
	return auth.LoginResponse{
		TokenPair: pair,
		User:      user.ToResponse(userData),
		Dashboard: string(user.DashboardFor(userData.Role)),
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         user.ParseRole(req.Role),
	}

	created, err := a.UserRepository.Create(ctx, newUser)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	pair, err := a.issueTokens(ctx, created)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return a.loginResponse(created, pair), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// OAuth-only accounts have no password hash.
	if userData.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	pair, err := a.issueTokens(ctx, userData)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return a.loginResponse(userData, pair), nil
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	userID, err := a.Service.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	revoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenPair{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPair{}, auth.ErrUserNotFound
		}
		return auth.TokenPair{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	// Rotate: the old refresh token dies with the exchange.
	if err := a.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	return a.issueTokens(ctx, userData)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	if !a.googleService.Enabled() {
		return auth.LoginResponse{}, auth.ErrOAuthNotConfigured
	}

	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}

	provider := "google"
	userData, err := a.UserRepository.GetByOAuth(ctx, provider, info.GoogleID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, fmt.Errorf("failed to get user by oauth: %w", err)
		}

		// Link by email when the account already exists, otherwise
		// create a fresh employee account.
		userData, err = a.UserRepository.GetByEmail(ctx, info.Email)
		if err != nil {
			if !errors.Is(err, user.ErrUserNotFound) {
				return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
			}

			userData, err = a.UserRepository.Create(ctx, user.User{
				Name:            info.Name,
				Email:           info.Email,
				Role:            user.RoleEmployee,
				OAuthProvider:   &provider,
				OAuthProviderID: &info.GoogleID,
			})
			if err != nil {
				return auth.LoginResponse{}, err
			}
		} else {
			userData.OAuthProvider = &provider
			userData.OAuthProviderID = &info.GoogleID
			if err := a.UserRepository.Update(ctx, userData); err != nil {
				return auth.LoginResponse{}, fmt.Errorf("failed to link google account: %w", err)
			}
		}
	}

	pair, err := a.issueTokens(ctx, userData)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return a.loginResponse(userData, pair), nil
}
