package tryout

import (
	"time"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
)

type Tryout struct {
	models.Base
	ScoutID     uint      `gorm:"not null;index" json:"scout_id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Location    string    `gorm:"size:150;not null;index" json:"location"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `gorm:"type:text" json:"description"`
}

// Location is a venue admins offer for tryouts.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null;uniqueIndex" json:"name"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationStatus moves pending -> accepted | declined, and never back.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined:
		return true
	default:
		return false
	}
}

// Source records who started the invitation.
type Source string

const (
	SourceScout  Source = "scout"
	SourcePlayer Source = "player"
)

type Invitation struct {
	models.Base
	TryoutID    uint             `gorm:"not null;uniqueIndex:idx_invitation_tryout_player" json:"tryout_id"`
	PlayerID    uint             `gorm:"not null;uniqueIndex:idx_invitation_tryout_player;index" json:"player_id"`
	Status      InvitationStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Source      Source           `gorm:"type:varchar(10);not null;default:scout" json:"source"`
	Message     string           `gorm:"type:text" json:"message"`
	RespondedAt *time.Time       `json:"responded_at"`
}

// InvitationView is an invitation as the owning scout sees it.
type InvitationView struct {
	Invitation
	PlayerName string `json:"player_name"`
}

// TryoutDetail is a tryout with its invitations.
type TryoutDetail struct {
	Tryout
	Invitations []InvitationView `json:"invitations"`
}

// PlayerInvitation is an invitation as the invited player sees it.
type PlayerInvitation struct {
	Invitation
	Tryout    Tryout `json:"tryout"`
	ScoutName string `json:"scout_name"`
}

// UpcomingTryout is a tryout listed to players.
type UpcomingTryout struct {
	Tryout
	ScoutName string `json:"scout_name"`
}
