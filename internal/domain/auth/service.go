package auth

import "context"

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// LoginWithGoogle exchanges an OAuth2 code for a session, creating
	// the user on first login.
	LoginWithGoogle(ctx context.Context, code string) (LoginResponse, error)
}
