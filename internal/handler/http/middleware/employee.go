package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/auth"
	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/domain/user"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/response"
	"github.com/sekurindo/secops-backend-go/internal/pkg/jwt"
)

type actorContextKey struct{}

// ActorFromContext returns the actor stashed by EmployeeRequired.
func ActorFromContext(ctx context.Context) (employee.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(employee.Actor)
	return actor, ok
}

// WithActor returns a context carrying the given actor, the same way
// EmployeeRequired does after loading the profile.
func WithActor(ctx context.Context, actor employee.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// EmployeeRequired loads the caller's employee profile and stashes an actor
// in the request context. Accounts without a linked profile are refused;
// field and monitoring endpoints are meaningless without one.
func EmployeeRequired(employeeRepo employee.EmployeeRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			employeeID, ok := jwt.ClaimInt64(claims["employee_id"])
			if !ok {
				response.HandleError(w, employee.ErrProfileRequired)
				return
			}

			emp, err := employeeRepo.GetByID(r.Context(), employeeID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					response.HandleError(w, employee.ErrProfileRequired)
					return
				}
				response.HandleError(w, err)
				return
			}

			role, _ := claims["role"].(string)
			actor := employee.Actor{
				Employee: emp,
				Role:     user.Role(role),
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
