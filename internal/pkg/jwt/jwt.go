package jwt

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/sekurindo/secops-backend-go/internal/domain/user"
)

// Identity carries the claims baked into every access token. EmployeeID and
// EmployeeCode are nil for accounts without a linked employee profile.
type Identity struct {
	UserID       int64
	EmployeeID   *int64
	EmployeeCode *string
	Role         user.Role
}

type Service interface {
	GenerateAccessToken(identity Identity) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID int64) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ParseRefreshToken(tokenString string) (userID int64, err error)
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	mu                         sync.RWMutex
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(identity Identity) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	// Numeric ids travel as json numbers; jwtauth hands claims back as
	// float64, callers parse through ClaimInt64.
	claims := map[string]interface{}{
		"user_id":       identity.UserID,
		"employee_id":   int64PtrOrNil(identity.EmployeeID),
		"employee_code": strPtrOrNil(identity.EmployeeCode),
		"role":          string(identity.Role),
		"type":          "access",
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID int64) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    "refresh",
	})
	return tokenString, expiresAt, err
}

// ParseRefreshToken validates a refresh token's signature, expiry and type,
// returning the owning user id.
func (j *JWTService) ParseRefreshToken(tokenString string) (int64, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return 0, err
	}
	if err := jwt.Validate(token); err != nil {
		return 0, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return 0, jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return 0, jwt.ErrInvalidJWT()
	}

	userID, ok := ClaimInt64(userIDVal)
	if !ok {
		return 0, jwt.ErrInvalidJWT()
	}
	return userID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// ClaimInt64 converts a decoded claim value to int64. JSON numbers come back
// as float64, freshly encoded tokens may still hold int64.
func ClaimInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func int64PtrOrNil(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func strPtrOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
