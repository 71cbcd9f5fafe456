package scout

import (
	"github.com/DhavalSuthar-24/scoutnet/internal/media"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

type ScoutProfile struct {
	models.Base
	UserID         uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Organization   string `gorm:"size:150" json:"organization"`
	Phone          string `gorm:"size:30" json:"phone"`
	ProfileImage   string `json:"profile_image"`
	ProfileImageID string `json:"profile_image_id"`
}

// Profile is the scout's own view of their account.
type Profile struct {
	User    *user.User    `json:"user"`
	Profile *ScoutProfile `json:"profile"`
}

// SearchResult is one page of player search results, cacheable as a unit.
type SearchResult struct {
	Players []player.Summary `json:"players"`
	Total   int64            `json:"total"`
}

// PlayerDetail is everything a scout sees on a player's page.
type PlayerDetail struct {
	*player.Profile
	Stats  *player.StatsView `json:"stats"`
	Videos []media.Video     `json:"videos"`
}
