package player

import (
	"math"
	"time"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
)

const (
	MinRating = 1.0
	MaxRating = 5.0
)

type PlayerProfile struct {
	models.Base
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Position       string     `gorm:"size:50;index" json:"position"`
	Club           string     `gorm:"size:100;index" json:"club"`
	Bio            string     `gorm:"type:text" json:"bio"`
	ProfileImage   string     `json:"profile_image"`
	ProfileImageID string     `json:"profile_image_id"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Rating         float64    `gorm:"type:decimal(3,2);not null;default:1" json:"rating"`
}

// Age in whole years at now, or nil without a date of birth.
func (p *PlayerProfile) Age(now time.Time) *int {
	if p == nil || p.DateOfBirth == nil {
		return nil
	}
	age := AgeAt(*p.DateOfBirth, now)
	return &age
}

// AgeAt counts completed years. A 29 February birthday is reached on 1 March in common years.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

type PlayerStats struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PlayerID      uint      `gorm:"uniqueIndex;not null" json:"player_id"`
	MatchesPlayed int       `gorm:"not null;default:0" json:"matches_played"`
	Goals         int       `gorm:"not null;default:0" json:"goals"`
	Assists       int       `gorm:"not null;default:0" json:"assists"`
	YellowCards   int       `gorm:"not null;default:0" json:"yellow_cards"`
	RedCards      int       `gorm:"not null;default:0" json:"red_cards"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ComputeRating maps cumulative stats onto the 1-5 scale, rounded to two decimals.
//
//	raw    = (2*goals + assists - yellow_cards - 3*red_cards) / matches_played
//	scaled = (raw + 3) / 6 * 4 + 1
//	rating = clamp(scaled, 1, 5)
func ComputeRating(s PlayerStats) float64 {
	if s.MatchesPlayed <= 0 {
		return MinRating
	}
	raw := (2*float64(s.Goals) + float64(s.Assists) - float64(s.YellowCards) - 3*float64(s.RedCards)) / float64(s.MatchesPlayed)
	scaled := (raw+3)/6*4 + 1
	rating := math.Max(MinRating, math.Min(MaxRating, scaled))
	return math.Round(rating*100) / 100
}

// Summary is one row of the scout search.
type Summary struct {
	UserID       uint       `json:"user_id"`
	Name         string     `json:"name"`
	Position     string     `json:"position"`
	Club         string     `json:"club"`
	Rating       float64    `json:"rating"`
	ProfileImage string     `json:"profile_image"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Age          *int       `json:"age" gorm:"-"`
}

// SearchFilter narrows the scout player search. Zero values are ignored.
type SearchFilter struct {
	Query     string
	Position  string
	Club      string
	MinRating float64
	MinAge    int
	MaxAge    int
}

type FilterOptions struct {
	Positions []string `json:"positions"`
	Clubs     []string `json:"clubs"`
}
