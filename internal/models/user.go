package models

import (
	"time"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID    string   `json:"_id" gorm:"primaryKey;size:36"`
	Name  string   `json:"name" gorm:"size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;size:20;default:student;index"`

	// Profile info
	Photo *string `json:"photo,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// EffectiveRole treats a missing role as student
func (u *User) EffectiveRole() UserRole {
	if u == nil || u.Role == "" {
		return RoleStudent
	}
	return u.Role
}
