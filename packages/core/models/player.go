package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RolePlayer = "PLAYER"
	RoleAdmin  = "ADMIN"
)

type Player struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string         `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"size:20;default:PLAYER" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Stats []PlayerStats `gorm:"foreignKey:PlayerID" json:"stats,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

func (p *Player) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type CreatePlayerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=PLAYER ADMIN"`
}

type UpdatePlayerRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}
