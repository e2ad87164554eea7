package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/auth"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose bearer token is missing, expired,
// or not an access token. Refresh tokens travel only as a cookie on the
// /auth routes and must never authenticate an API call, so the claim
// type is checked here rather than trusting any valid signature.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
