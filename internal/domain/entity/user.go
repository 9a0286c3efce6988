package entity

import (
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/enum"
)

// User is a seeded store operator
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     enum.Role `json:"role"`
	Password string    `json:"-"`
}

// HasRole reports whether the user holds any of the given roles
func (u *User) HasRole(roles ...enum.Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Brand is a seeded product brand
type Brand struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Type *enum.BrandType `json:"type,omitempty"`
}

// Session records which user is operating the till. A zero UserID means logged out.
type Session struct {
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

// Active reports whether someone is logged in
func (s *Session) Active() bool {
	return s != nil && s.UserID != ""
}
