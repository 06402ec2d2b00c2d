package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleCoordinator UserRole = "coordinator"
	RoleSupervisor  UserRole = "supervisor"
	RoleAdmin       UserRole = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleCoordinator, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// UserStatus represents the account lifecycle state.
type UserStatus string

const (
	UserStatusActive          UserStatus = "active"
	UserStatusPendingApproval UserStatus = "pending_approval"
	UserStatusSuspended       UserStatus = "suspended"
)

// User represents an application user record. JSON field names follow the
// persisted partition layout (camelCase), so records round-trip against blobs
// written by the original frontend.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"passwordHash,omitempty"`
	Role             UserRole   `json:"role"`
	Phone            string     `json:"phone,omitempty"`
	Company          string     `json:"company,omitempty"`
	StudentID        string     `json:"studentId,omitempty"`
	Department       string     `json:"department,omitempty"`
	RegistrationDate time.Time  `json:"registrationDate"`
	Status           UserStatus `json:"status"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	ProfileImage     string     `json:"profileImage,omitempty"`
}

// Sanitized returns a copy safe to hand to API callers.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// UserUpdate carries the fields a caller may shallow-merge onto a user.
// Nil fields are left untouched.
type UserUpdate struct {
	Name         *string     `json:"name,omitempty"`
	Email        *string     `json:"email,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Company      *string     `json:"company,omitempty"`
	StudentID    *string     `json:"studentId,omitempty"`
	Department   *string     `json:"department,omitempty"`
	Status       *UserStatus `json:"status,omitempty"`
	ProfileImage *string     `json:"profileImage,omitempty"`
	LastLogin    *time.Time  `json:"lastLogin,omitempty"`
}
