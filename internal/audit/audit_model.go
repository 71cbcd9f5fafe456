package audit

import "time"

type Action string

const (
	ActionCreate        Action = "CREATE"
	ActionUpdate        Action = "UPDATE"
	ActionDelete        Action = "DELETE"
	ActionResetPassword Action = "RESET_PASSWORD"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionResetPassword:
		return true
	default:
		return false
	}
}

// Entity types written to SystemLog.EntityType.
const (
	EntityUser     = "user"
	EntityVideo    = "video"
	EntityLocation = "location"
)

// SystemLog is one append-only row of the admin audit trail.
type SystemLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    uint      `gorm:"not null;index" json:"actor_id"`
	Action     Action    `gorm:"type:varchar(20);not null;index" json:"action"`
	EntityType string    `gorm:"size:40;not null;index" json:"entity_type"`
	EntityID   uint      `gorm:"not null" json:"entity_id"`
	Details    string    `gorm:"type:text" json:"details"`
	IPAddress  string    `gorm:"size:64" json:"ip_address"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

type Filter struct {
	Action     Action
	EntityType string
	ActorID    uint
}
