package entities

import (
	"strings"

	"github.com/google/uuid"
)

// UserRole mirrors the roles issued by the auth service
type UserRole string

const (
	UserRoleStudent UserRole = "STUDENT"
	UserRoleTutor   UserRole = "TUTOR"
	UserRoleAdmin   UserRole = "ADMIN"
)

// User is the read-only identity owned by the auth service
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
}

// FullName returns "first last", trimmed
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
