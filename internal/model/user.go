package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	FirstName      string    `json:"first_name" gorm:"size:255;not null"`
	LastName       string    `json:"last_name" gorm:"size:255;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role           Role      `json:"role" gorm:"size:50;default:'USER'"`
	NeverConnected bool      `json:"never_connected" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsPrivileged reports whether the user's role bypasses project membership
// checks. Dispatch is on the Role variant, not raw string comparison.
func (u *User) IsPrivileged() bool {
	switch u.Role {
	case RoleProjectManager, RoleAdmin:
		return true
	default:
		return false
	}
}
