package auth

import "context"

type AuthService interface {
	// Login authenticates by employee code and password.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh rotates a refresh token into a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
