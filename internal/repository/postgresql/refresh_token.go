package postgresql

import (
	"context"
	"fmt"

	"github.com/sekurindo/secops-backend-go/internal/domain/user"
	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
)

type refreshTokenRepository struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) user.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Store implements user.RefreshTokenRepository.
func (r *refreshTokenRepository) Store(ctx context.Context, token user.RefreshToken) (user.RefreshToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, token.UserID, token.Token, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return user.RefreshToken{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return token, nil
}

// GetByToken implements user.RefreshTokenRepository.
func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (user.RefreshToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`

	var rt user.RefreshToken
	err := q.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.RevokedAt, &rt.CreatedAt,
	)
	if err != nil {
		return user.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return rt, nil
}

// Revoke implements user.RefreshTokenRepository. Revoking an unknown or
// already revoked token is a no-op.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	if _, err := q.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllForUser implements user.RefreshTokenRepository.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}
