package fixtures

import (
	"fmt"
	"log"
	"math/rand"

	authUtils "matchpoint-api/packages/auth/utils"
	"matchpoint-api/packages/core/models"
	"matchpoint-api/packages/core/services"

	"gorm.io/gorm"
)

type Fixtures struct {
	db            *gorm.DB
	playerService *services.PlayerService
	sportService  *services.SportService
	matchService  *services.MatchService
	statsService  *services.StatsService
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{
		db:            db,
		playerService: services.NewPlayerService(db),
		sportService:  services.NewSportService(db),
		matchService:  services.NewMatchService(db),
		statsService:  services.NewStatsService(db),
	}
}

var demoUsernames = []string{
	"alice", "bob", "charlie", "diana", "erik", "fatima", "george", "hana",
}

var demoSports = []string{"Table Tennis", "Badminton", "Foosball"}

// GenerateTestData seeds an admin, demo players, sports and a batch of
// settled matches so the leaderboard has something to show.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	hashed, err := authUtils.HashPassword("password123")
	if err != nil {
		return err
	}

	admin, err := f.playerService.CreatePlayer("admin", "admin@matchpoint.local", hashed, models.RoleAdmin)
	if err != nil {
		return err
	}
	log.Printf("Created admin (id=%d)", admin.ID)

	playerIDs := make([]uint, 0, len(demoUsernames))
	for _, username := range demoUsernames {
		player, err := f.playerService.CreatePlayer(username, username+"@matchpoint.local", hashed, "")
		if err != nil {
			return err
		}
		playerIDs = append(playerIDs, player.ID)
	}
	log.Printf("Created %d players", len(playerIDs))

	sportIDs := make([]uint, 0, len(demoSports))
	for _, name := range demoSports {
		sport, err := f.sportService.CreateSport(models.CreateSportRequest{Name: name})
		if err != nil {
			return err
		}
		sportIDs = append(sportIDs, sport.ID)
	}
	log.Printf("Created %d sports", len(sportIDs))

	matchCount := 40
	for i := 0; i < matchCount; i++ {
		sportID := sportIDs[rand.Intn(len(sportIDs))]

		shuffled := append([]uint{}, playerIDs...)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		sideA := shuffled[:1+rand.Intn(2)]
		rest := shuffled[len(sideA):]
		sideB := rest[:1+rand.Intn(2)]

		scoreA := rand.Intn(12)
		scoreB := rand.Intn(12)

		req := models.CreateMatchRequest{
			SportID:      sportID,
			TeamAPlayers: sideA,
			TeamBPlayers: sideB,
			ScoreA:       &scoreA,
			ScoreB:       &scoreB,
		}

		if _, err := f.matchService.CreateMatch(sideA[0], req); err != nil {
			return fmt.Errorf("fixture match %d: %w", i, err)
		}
	}
	log.Printf("Created %d settled matches", matchCount)

	for _, sportID := range sportIDs {
		if err := f.statsService.RecalculateRanks(sportID); err != nil {
			return err
		}
	}

	log.Println("Fixtures generation completed")
	return nil
}

// CleanDatabase wipes every fixture-managed table.
func (f *Fixtures) CleanDatabase() error {
	log.Println("Cleaning database...")

	tables := []interface{}{
		&models.Match{},
		&models.PlayerStats{},
		&models.Team{},
		&models.Sport{},
		&models.Player{},
	}

	for _, table := range tables {
		if err := f.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}

	log.Println("Database cleaned")
	return nil
}
