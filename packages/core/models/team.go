package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Player1ID uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"player1_id"`
	Player2ID *uint          `json:"player2_id"`
	MemberKey string         `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Name      string         `gorm:"size:255" json:"name"`
	Slug      string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player1 Player  `gorm:"foreignKey:Player1ID;references:ID" json:"player1,omitempty"`
	Player2 *Player `gorm:"foreignKey:Player2ID;references:ID" json:"player2,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMemberKey canonicalizes a member set so {7,3} and {3,7} map to the
// same key. The key carries the teams' uniqueness constraint.
func TeamMemberKey(playerIDs []uint) string {
	if len(playerIDs) == 1 {
		return fmt.Sprintf("%d", playerIDs[0])
	}
	lo, hi := playerIDs[0], playerIDs[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%d:%d", lo, hi)
}

// PlayerIDs returns the member ids, one entry for a solo team.
func (t *Team) PlayerIDs() []uint {
	ids := []uint{t.Player1ID}
	if t.Player2ID != nil {
		ids = append(ids, *t.Player2ID)
	}
	return ids
}

func (t *Team) HasPlayer(playerID uint) bool {
	if t.Player1ID == playerID {
		return true
	}
	return t.Player2ID != nil && *t.Player2ID == playerID
}

func (t *Team) MemberCount() int {
	if t.Player2ID != nil {
		return 2
	}
	return 1
}

type CreateTeamRequest struct {
	Players []uint `json:"players" binding:"required,min=1,max=2"`
}

type AddTeamPlayerRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}
