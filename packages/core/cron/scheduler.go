package cron

import (
	"log"

	"matchpoint-api/packages/core/services"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron         *cron.Cron
	sportService *services.SportService
	statsService *services.StatsService
}

func NewScheduler(sportService *services.SportService, statsService *services.StatsService) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:         c,
		sportService: sportService,
		statsService: statsService,
	}
}

// Start registers and launches the scheduled jobs.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Recompute ladder ranks at minute 0 of every hour. Settlements only
	// touch ratings; ranks are derived lazily here.
	_, err := s.cron.AddFunc("0 0 * * * *", s.runRankRecalculation)
	if err != nil {
		log.Printf("Error scheduling rank recalculation job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runRankRecalculation() {
	log.Println("Running rank recalculation job...")

	sports, err := s.sportService.GetAllSports()
	if err != nil {
		log.Printf("Error listing sports for rank recalculation: %v", err)
		return
	}

	for _, sport := range sports {
		if err := s.statsService.RecalculateRanks(sport.ID); err != nil {
			log.Printf("Error recalculating ranks for sport %d: %v", sport.ID, err)
			continue
		}
	}

	log.Println("Rank recalculation job completed")
}

// RunNow manually triggers the rank recalculation job.
func (s *Scheduler) RunNow() {
	s.runRankRecalculation()
}
