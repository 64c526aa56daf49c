package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account of the tracker.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// ValidRole reports whether role is one the system knows about.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
