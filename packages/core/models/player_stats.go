package models

import (
	"time"
)

type PlayerStats struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID      uint      `gorm:"not null;uniqueIndex:idx_player_sport;constraint:OnDelete:CASCADE" json:"player_id"`
	SportID       uint      `gorm:"not null;uniqueIndex:idx_player_sport;constraint:OnDelete:CASCADE" json:"sport_id"`
	MatchesPlayed int       `gorm:"default:0" json:"matches_played"`
	Wins          int       `gorm:"default:0" json:"wins"`
	Losses        int       `gorm:"default:0" json:"losses"`
	GoalsScored   int       `gorm:"default:0" json:"goals_scored"`
	WinRate       float64   `gorm:"default:0" json:"win_rate"`
	EloRating     float64   `gorm:"default:1000" json:"elo_rating"`
	Rank          int       `gorm:"default:0" json:"rank"`
	LastUpdated   time.Time `json:"last_updated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Player Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Sport  Sport  `gorm:"foreignKey:SportID;references:ID" json:"sport,omitempty"`
}

func (PlayerStats) TableName() string {
	return "player_stats"
}
