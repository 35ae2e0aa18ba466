package services

import (
	"fmt"
	"testing"

	"matchpoint-api/packages/core/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. A single
// connection keeps the in-memory schema visible to everything the test
// does.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Player{},
		&models.Sport{},
		&models.Team{},
		&models.Match{},
		&models.PlayerStats{},
	))

	return db
}

func createTestPlayer(t *testing.T, db *gorm.DB, username string) models.Player {
	t.Helper()

	player := models.Player{
		Username: username,
		Email:    fmt.Sprintf("%s@test.local", username),
		Password: "hashed-password",
		Role:     models.RolePlayer,
	}
	require.NoError(t, db.Create(&player).Error)
	return player
}

func createTestSport(t *testing.T, db *gorm.DB, name string) models.Sport {
	t.Helper()

	sport := models.Sport{Name: name, Slug: name}
	require.NoError(t, db.Create(&sport).Error)
	return sport
}

func createTestStats(t *testing.T, db *gorm.DB, playerID, sportID uint, elo float64) models.PlayerStats {
	t.Helper()

	stats := models.PlayerStats{
		PlayerID:  playerID,
		SportID:   sportID,
		EloRating: elo,
	}
	require.NoError(t, db.Create(&stats).Error)
	return stats
}
