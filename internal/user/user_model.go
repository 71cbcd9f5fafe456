package user

import (
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
)

// Role is the closed set of account roles.
type Role string

const (
	RolePlayer Role = "player"
	RoleScout  Role = "scout"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RolePlayer, RoleScout, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// Status is the account standing, changed only by admins.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	default:
		return false
	}
}

type User struct {
	models.Base
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	Status   Status `gorm:"type:varchar(20);not null;default:active;index" json:"status"`
}

func (u *User) IsActive() bool { return u.Status == StatusActive }

// ListFilter narrows admin user listings.
type ListFilter struct {
	Role   Role
	Status Status
	Search string
}
