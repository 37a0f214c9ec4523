package user

import "time"

// Role is a closed set. Authorization checks go through the capability
// helpers below, never through raw string comparison in handlers.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

// CanManageContent reports whether the role may create, edit or delete
// modules and lessons.
func (r Role) CanManageContent() bool {
	return r == RoleAdmin
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
