package user

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type Role string

const (
	// RoleAdmin is back-office staff; sees every patrol and incident.
	RoleAdmin Role = "admin"
	// RoleSupervisor manages guards through the approval line.
	RoleSupervisor Role = "supervisor"
	// RoleGuard is field security personnel.
	RoleGuard Role = "guard"
)

type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
