package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (User, error)
}

// RefreshTokenRepository persists issued refresh tokens so logout and
// rotation survive restarts.
type RefreshTokenRepository interface {
	Store(ctx context.Context, token RefreshToken) (RefreshToken, error)
	GetByToken(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}
