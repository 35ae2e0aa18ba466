package models

import (
	"time"

	"gorm.io/gorm"
)

type Sport struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Slug      string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Sport) TableName() string {
	return "sports"
}

type CreateSportRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateSportRequest struct {
	Name *string `json:"name,omitempty"`
}
