package auth

import (
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

type RegisterRequest struct {
	Name            string `json:"name" binding:"required,max=100" example:"Jane Doe"`
	Email           string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password        string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"secret123"`
	Role            string `json:"role" binding:"required" example:"player"`
	DOB             string `json:"dob,omitempty" example:"2004-05-17"`
	Organization    string `json:"organization,omitempty" example:"City FC Academy"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type AuthResponse struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken"`
	User         *user.User `json:"user"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// MeResponse is the caller's account plus its role profile. Profile is nil for admins
// and for accounts that never saved one.
type MeResponse struct {
	User    *user.User `json:"user"`
	Profile any        `json:"profile"`
}

// TokenConfig holds the signing secrets and lifetimes.
type TokenConfig struct {
	AccessSecret        string
	AccessExpiryMinutes int
	RefreshSecret       string
	RefreshExpiryDays   int
}
