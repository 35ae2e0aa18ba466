package services

import (
	"errors"
	"fmt"

	"matchpoint-api/packages/core/apperrors"
	"matchpoint-api/packages/core/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type SportService struct {
	db           *gorm.DB
	statsService *StatsService
}

func NewSportService(db *gorm.DB) *SportService {
	return &SportService{
		db:           db,
		statsService: NewStatsService(db),
	}
}

// CreateSport adds a sport and opens a stats row for every existing player
// in it, so ratings exist before the first match is ever recorded.
func (s *SportService) CreateSport(req models.CreateSportRequest) (*models.Sport, error) {
	sport := &models.Sport{
		Name: req.Name,
		Slug: slug.Make(req.Name),
	}

	if err := s.db.Create(sport).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a sport with this name already exists: %w", apperrors.ErrConflict)
		}
		return nil, err
	}

	if err := s.statsService.SeedSport(sport.ID); err != nil {
		return nil, err
	}

	return sport, nil
}

func (s *SportService) GetSportByID(id uint) (*models.Sport, error) {
	var sport models.Sport

	result := s.db.First(&sport, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sport not found: %w", apperrors.ErrNotFound)
		}
		return nil, result.Error
	}

	return &sport, nil
}

func (s *SportService) GetAllSports() ([]models.Sport, error) {
	var sports []models.Sport

	result := s.db.Order("name ASC").Find(&sports)
	if result.Error != nil {
		return nil, result.Error
	}

	return sports, nil
}

func (s *SportService) UpdateSport(id uint, req models.UpdateSportRequest) (*models.Sport, error) {
	sport, err := s.GetSportByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = slug.Make(*req.Name)
	}

	if len(updates) > 0 {
		if err := s.db.Model(sport).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("a sport with this name already exists: %w", apperrors.ErrConflict)
			}
			return nil, err
		}
	}

	return s.GetSportByID(id)
}

// DeleteSport refuses to remove a sport that still has matches on record.
func (s *SportService) DeleteSport(id uint) error {
	if _, err := s.GetSportByID(id); err != nil {
		return err
	}

	var matchCount int64
	if err := s.db.Model(&models.Match{}).Where("sport_id = ?", id).Count(&matchCount).Error; err != nil {
		return err
	}
	if matchCount > 0 {
		return fmt.Errorf("sport has recorded matches: %w", apperrors.ErrConflict)
	}

	return s.db.Delete(&models.Sport{}, id).Error
}
