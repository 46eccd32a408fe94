package domain

import "time"

// User roles
const (
	RoleUser      = "user"      // Default role
	RoleModerator = "moderator" // Can approve/reject/close referendums
	RoleAdmin     = "admin"     // Full access, including deletions and maintenance
)

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Username     string    `gorm:"unique;not null" json:"username"`  // Unique username
	Email        string    `gorm:"unique;not null" json:"email"`     // Unique email
	PasswordHash string    `gorm:"not null" json:"-"`                // Hashed password, never serialized
	Role         string    `gorm:"default:user" json:"role"`         // Role: user, moderator or admin
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of registration
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
