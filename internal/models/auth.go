package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	User        UserInfo  `json:"user"`
	IssuedAt    time.Time `json:"issuedAt"`
}

// RegisterRequest holds the self-registration payload.
type RegisterRequest struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=6"`
	Role       UserRole `json:"role" validate:"required"`
	StudentID  string   `json:"studentId"`
	Company    string   `json:"company"`
	Department string   `json:"department"`
	Phone      string   `json:"phone"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       UserRole   `json:"role"`
	StudentID  string     `json:"studentId,omitempty"`
	Company    string     `json:"company,omitempty"`
	Department string     `json:"department,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Status     UserStatus `json:"status,omitempty"`
}

// Info projects a user into its response shape.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		StudentID:  u.StudentID,
		Company:    u.Company,
		Department: u.Department,
		Phone:      u.Phone,
		Status:     u.Status,
	}
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}
