package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sekurindo/secops-backend-go/internal/domain/auth"
	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/domain/user"
	"github.com/sekurindo/secops-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	user.UserRepository
	user.RefreshTokenRepository
	jwtService jwt.Service
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	refreshTokenRepo user.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository:     employeeRepo,
		UserRepository:         userRepo,
		RefreshTokenRepository: refreshTokenRepo,
		jwtService:             jwtService,
	}
}

// Login implements auth.AuthService. Credentials are the employee code and
// the linked account's password; the error is identical for unknown codes
// and wrong passwords.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if emp.UserID == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	account, err := s.UserRepository.GetByID(ctx, *emp.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, err := s.issueTokens(ctx, account, &emp)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		Token:        token,
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Role:         string(account.Role),
	}, nil
}

// Refresh implements auth.AuthService. Refresh tokens rotate: the presented
// token is revoked and a fresh pair issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := s.RefreshTokenRepository.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored.RevokedAt != nil {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return auth.TokenResponse{}, auth.ErrTokenExpired
	}

	account, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var emp *employee.Employee
	if e, err := s.EmployeeRepository.GetByUserID(ctx, userID); err == nil {
		emp = &e
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.RefreshTokenRepository.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, account, emp)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	if err := s.RefreshTokenRepository.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, account user.User, emp *employee.Employee) (auth.TokenResponse, error) {
	identity := jwt.Identity{
		UserID: account.ID,
		Role:   account.Role,
	}
	if emp != nil {
		identity.EmployeeID = &emp.ID
		identity.EmployeeCode = &emp.EmployeeCode
	}

	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(identity)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if _, err := s.RefreshTokenRepository.Store(ctx, user.RefreshToken{
		UserID:    account.ID,
		Token:     refreshToken,
		ExpiresAt: time.Unix(refreshExp, 0),
	}); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}
