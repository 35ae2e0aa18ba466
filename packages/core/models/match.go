package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// WinnerUnset doubles as the pending state: a match without a winner
	// marker has not been settled yet.
	WinnerUnset = ""
	WinnerTeamA = "A"
	WinnerTeamB = "B"
	WinnerDraw  = "DRAW"
)

type Match struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	SportID    uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"sport_id"`
	CreatorID  uint           `gorm:"not null" json:"creator_id"`
	TeamAID    uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"team_a_id"`
	TeamBID    uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"team_b_id"`
	ScoreA     int            `gorm:"default:0" json:"score_a"`
	ScoreB     int            `gorm:"default:0" json:"score_b"`
	WinnerTeam string         `gorm:"size:8;default:''" json:"winner_team"` // '', A, B or DRAW
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sport   Sport  `gorm:"foreignKey:SportID;references:ID" json:"sport,omitempty"`
	Creator Player `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	TeamA   Team   `gorm:"foreignKey:TeamAID;references:ID" json:"team_a,omitempty"`
	TeamB   Team   `gorm:"foreignKey:TeamBID;references:ID" json:"team_b,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

func (m *Match) Finished() bool {
	return m.WinnerTeam != WinnerUnset
}

// WinnerFromScores maps a final score to the winner marker. Equal scores
// are a draw, never an error.
func WinnerFromScores(scoreA, scoreB int) string {
	switch {
	case scoreA > scoreB:
		return WinnerTeamA
	case scoreB > scoreA:
		return WinnerTeamB
	default:
		return WinnerDraw
	}
}

type CreateMatchRequest struct {
	SportID      uint   `json:"sport_id" binding:"required"`
	TeamAPlayers []uint `json:"team_a_players" binding:"required,min=1,max=2"`
	TeamBPlayers []uint `json:"team_b_players" binding:"required,min=1,max=2"`
	ScoreA       *int   `json:"score_a,omitempty"`
	ScoreB       *int   `json:"score_b,omitempty"`
}

type SettleMatchRequest struct {
	ScoreA *int `json:"score_a" binding:"required"`
	ScoreB *int `json:"score_b" binding:"required"`
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
