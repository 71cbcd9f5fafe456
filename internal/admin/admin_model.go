package admin

import (
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"suspended"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"omitempty,min=6,max=72"`
}

type LocationRequest struct {
	Name string `json:"name" binding:"required,max=120" example:"Riverside Park"`
}

// ResetPasswordResult carries the generated password once, when one was generated.
type ResetPasswordResult struct {
	UserID            uint   `json:"user_id"`
	TemporaryPassword string `json:"temporary_password,omitempty"`
}

type UserDetail struct {
	User    *user.User `json:"user"`
	Profile any        `json:"profile"`
}

type Dashboard struct {
	UsersByRole         map[string]int64 `json:"users_by_role"`
	UsersByStatus       map[string]int64 `json:"users_by_status"`
	MediaByStatus       map[string]int64 `json:"media_by_status"`
	Tryouts             int64            `json:"tryouts"`
	InvitationsByStatus map[string]int64 `json:"invitations_by_status"`
}
