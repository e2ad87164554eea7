package auth

import (
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	EmployeeCode string `json:"employee_code"`
	Password     string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code format is invalid",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresAt  int64  `json:"access_token_expires_at"`
	RefreshToken          string `json:"-"` // travels as an http-only cookie
	RefreshTokenExpiresAt int64  `json:"-"`
}

type LoginResponse struct {
	Token        TokenResponse `json:"token"`
	EmployeeID   int64         `json:"employee_id"`
	EmployeeCode string        `json:"employee_code"`
	FullName     string        `json:"full_name"`
	Role         string        `json:"role"`
}
