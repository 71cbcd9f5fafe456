package shortlist

import (
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
)

type Shortlist struct {
	models.Base
	ScoutID  uint   `gorm:"not null;uniqueIndex:idx_shortlist_scout_player" json:"scout_id"`
	PlayerID uint   `gorm:"not null;uniqueIndex:idx_shortlist_scout_player;index" json:"player_id"`
	Notes    string `gorm:"type:text" json:"notes"`
}

// Entry is a shortlist row with the player's name and profile.
type Entry struct {
	Shortlist
	PlayerName string                `json:"player_name"`
	Profile    *player.PlayerProfile `json:"profile"`
}
