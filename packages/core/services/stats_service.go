package services

import (
	"errors"
	"fmt"
	"time"

	"matchpoint-api/packages/core/apperrors"
	"matchpoint-api/packages/core/models"
	"matchpoint-api/packages/core/utils"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

// EnsureStats guarantees a stats row exists for the (player, sport) pair,
// creating it with the default rating and zeroed counters if absent. Runs
// on the caller's transaction so settlement creates rows atomically with
// its updates.
func (s *StatsService) EnsureStats(tx *gorm.DB, playerID, sportID uint) (*models.PlayerStats, error) {
	var stats models.PlayerStats

	err := tx.Where(models.PlayerStats{PlayerID: playerID, SportID: sportID}).
		Attrs(models.PlayerStats{
			EloRating:   utils.DefaultEloRating,
			LastUpdated: time.Now(),
		}).
		FirstOrCreate(&stats).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent creator got there first; its row is the one.
		err = tx.Where("player_id = ? AND sport_id = ?", playerID, sportID).First(&stats).Error
	}
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// SeedPlayer creates stats rows for a new player across every existing
// sport, so registration is one of the points where a rating is born.
func (s *StatsService) SeedPlayer(playerID uint) error {
	var sports []models.Sport
	if err := s.db.Find(&sports).Error; err != nil {
		return err
	}

	for _, sport := range sports {
		if _, err := s.EnsureStats(s.db, playerID, sport.ID); err != nil {
			return err
		}
	}

	return nil
}

// SeedSport creates stats rows for every existing player in a new sport.
func (s *StatsService) SeedSport(sportID uint) error {
	var players []models.Player
	if err := s.db.Find(&players).Error; err != nil {
		return err
	}

	for _, player := range players {
		if _, err := s.EnsureStats(s.db, player.ID, sportID); err != nil {
			return err
		}
	}

	return nil
}

func (s *StatsService) GetLeaderboard(sportID uint, limit int) ([]models.PlayerStats, error) {
	var sport models.Sport
	if err := s.db.First(&sport, sportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sport not found: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}

	var leaderboard []models.PlayerStats
	result := s.db.Where("sport_id = ?", sportID).
		Order("elo_rating DESC").
		Limit(limit).
		Preload("Player").
		Find(&leaderboard)
	if result.Error != nil {
		return nil, result.Error
	}

	return leaderboard, nil
}

func (s *StatsService) GetPlayerStats(playerID, sportID uint) (*models.PlayerStats, error) {
	var stats models.PlayerStats

	result := s.db.Where("player_id = ? AND sport_id = ?", playerID, sportID).
		Preload("Player").Preload("Sport").
		First(&stats)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no stats for this player and sport: %w", apperrors.ErrNotFound)
		}
		return nil, result.Error
	}

	return &stats, nil
}

// GetAllStats returns a player's stats across every sport they have a row
// for.
func (s *StatsService) GetAllStats(playerID uint) ([]models.PlayerStats, error) {
	var stats []models.PlayerStats

	result := s.db.Where("player_id = ?", playerID).
		Preload("Sport").
		Find(&stats)
	if result.Error != nil {
		return nil, result.Error
	}

	return stats, nil
}

// RecalculateRanks rewrites the rank column for one sport's ladder. Equal
// ratings share a rank.
func (s *StatsService) RecalculateRanks(sportID uint) error {
	var rows []models.PlayerStats
	if err := s.db.Where("sport_id = ?", sportID).
		Order("elo_rating DESC, player_id ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	currentRank := 1
	var previousElo float64

	for i, row := range rows {
		if i > 0 && row.EloRating != previousElo {
			currentRank = i + 1
		}

		if err := s.db.Model(&models.PlayerStats{}).
			Where("id = ?", row.ID).
			Update("rank", currentRank).Error; err != nil {
			return err
		}

		previousElo = row.EloRating
	}

	return nil
}
