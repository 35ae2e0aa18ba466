package services

import (
	"errors"
	"fmt"

	"matchpoint-api/packages/core/apperrors"
	"matchpoint-api/packages/core/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db           *gorm.DB
	statsService *StatsService
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db:           db,
		statsService: NewStatsService(db),
	}
}

// CreatePlayer persists a player and opens their stats rows for every
// existing sport. The password must already be hashed by the caller.
func (s *PlayerService) CreatePlayer(username, email, hashedPassword, role string) (*models.Player, error) {
	var existing models.Player
	if err := s.db.Where("email = ? OR username = ?", email, username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("username or email already in use: %w", apperrors.ErrConflict)
	}

	if role == "" {
		role = models.RolePlayer
	}

	player := &models.Player{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	}

	if err := s.db.Create(player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username or email already in use: %w", apperrors.ErrConflict)
		}
		return nil, err
	}

	if err := s.statsService.SeedPlayer(player.ID); err != nil {
		return nil, err
	}

	return player, nil
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player not found: %w", apperrors.ErrNotFound)
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) GetPlayerByEmail(email string) (*models.Player, error) {
	var player models.Player

	result := s.db.Where("email = ?", email).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player not found: %w", apperrors.ErrNotFound)
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) GetAllPlayers(page, pageSize int) (*models.PaginatedPlayersResponse, error) {
	var players []models.Player
	var total int64

	if err := s.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := s.db.Order("username ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&players).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedPlayersResponse{
		Data:       players,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdatePlayer changes a player's username or password hash.
func (s *PlayerService) UpdatePlayer(id uint, username, hashedPassword *string) (*models.Player, error) {
	player, err := s.GetPlayerByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if username != nil {
		updates["username"] = *username
	}
	if hashedPassword != nil {
		updates["password"] = *hashedPassword
	}

	if len(updates) > 0 {
		if err := s.db.Model(player).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("username already in use: %w", apperrors.ErrConflict)
			}
			return nil, err
		}
	}

	return s.GetPlayerByID(id)
}

func (s *PlayerService) DeletePlayer(id uint) error {
	result := s.db.Delete(&models.Player{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("player not found: %w", apperrors.ErrNotFound)
	}

	return nil
}
