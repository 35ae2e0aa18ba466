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

type MatchService struct {
	db           *gorm.DB
	teamService  *TeamService
	statsService *StatsService
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db:           db,
		teamService:  NewTeamService(db),
		statsService: NewStatsService(db),
	}
}

// CreateMatch records a match between two sides given as player id sets.
// Both sides are resolved to teams (created on the fly when needed). When
// both scores are supplied the match is settled immediately in the same
// transaction; with no scores it stays pending until SettleMatch. A single
// score without its counterpart is rejected.
func (s *MatchService) CreateMatch(creatorID uint, req models.CreateMatchRequest) (*models.Match, error) {
	var sport models.Sport
	if err := s.db.First(&sport, req.SportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sport not found: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}

	if (req.ScoreA == nil) != (req.ScoreB == nil) {
		return nil, fmt.Errorf("both scores must be supplied together: %w", apperrors.ErrValidation)
	}

	teamA, err := s.teamService.Resolve(req.TeamAPlayers)
	if err != nil {
		return nil, err
	}
	teamB, err := s.teamService.Resolve(req.TeamBPlayers)
	if err != nil {
		return nil, err
	}

	if teamA.ID == teamB.ID {
		return nil, fmt.Errorf("a team cannot play against itself: %w", apperrors.ErrValidation)
	}

	match := models.Match{
		SportID:    req.SportID,
		CreatorID:  creatorID,
		TeamAID:    teamA.ID,
		TeamBID:    teamB.ID,
		WinnerTeam: models.WinnerUnset,
	}

	if req.ScoreA != nil && req.ScoreB != nil {
		match.ScoreA = *req.ScoreA
		match.ScoreB = *req.ScoreB
		match.WinnerTeam = models.WinnerFromScores(match.ScoreA, match.ScoreB)

		tx := s.db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Create(&match).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := s.settle(tx, &match, teamA, teamB); err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	} else {
		if err := s.db.Create(&match).Error; err != nil {
			return nil, err
		}
	}

	return s.GetMatchByID(match.ID)
}

// SettleMatch finalizes a pending match with its scores, reported by one
// of its participants, and propagates rating and stats changes to every
// player involved. The pending-to-finished transition is a compare-and-swap
// so a concurrent double submission settles exactly once.
func (s *MatchService) SettleMatch(matchID uint, scoreA, scoreB int, actingPlayerID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.Preload("TeamA").Preload("TeamB").First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match not found: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}

	if match.Finished() {
		return nil, fmt.Errorf("match is already finished: %w", apperrors.ErrConflict)
	}

	if !match.TeamA.HasPlayer(actingPlayerID) && !match.TeamB.HasPlayer(actingPlayerID) {
		return nil, fmt.Errorf("only a participant can report the result: %w", apperrors.ErrUnauthorized)
	}

	winner := models.WinnerFromScores(scoreA, scoreB)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Guarded transition: only a still-pending row is updated, so the
	// loser of a settlement race sees zero affected rows.
	result := tx.Model(&models.Match{}).
		Where("id = ? AND winner_team = ?", matchID, models.WinnerUnset).
		Updates(map[string]interface{}{
			"score_a":     scoreA,
			"score_b":     scoreB,
			"winner_team": winner,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("match is already finished: %w", apperrors.ErrConflict)
	}

	match.ScoreA = scoreA
	match.ScoreB = scoreB
	match.WinnerTeam = winner

	if err := s.settle(tx, &match, &match.TeamA, &match.TeamB); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(matchID)
}

// settle applies one finished match to every participant's stats row. Each
// side's effective rating is the average over its members; the resulting
// delta is shared identically by every member of that side, so teammates
// keep their individual baselines while moving together.
func (s *MatchService) settle(tx *gorm.DB, match *models.Match, teamA, teamB *models.Team) error {
	now := time.Now()

	sideA := teamA.PlayerIDs()
	sideB := teamB.PlayerIDs()

	for _, playerID := range append(append([]uint{}, sideA...), sideB...) {
		if _, err := s.statsService.EnsureStats(tx, playerID, match.SportID); err != nil {
			return err
		}
	}

	avgA, err := s.sideAverageElo(tx, sideA, match.SportID)
	if err != nil {
		return err
	}
	avgB, err := s.sideAverageElo(tx, sideB, match.SportID)
	if err != nil {
		return err
	}

	resultA := utils.ResultFromScores(match.ScoreA, match.ScoreB)
	resultB := 1 - resultA

	newA, newB := utils.UpdateElo(avgA, avgB, resultA)
	deltaA := newA - avgA
	deltaB := newB - avgB

	if err := s.applySideUpdates(tx, sideA, match.SportID, resultA, deltaA, now); err != nil {
		return err
	}
	return s.applySideUpdates(tx, sideB, match.SportID, resultB, deltaB, now)
}

func (s *MatchService) sideAverageElo(tx *gorm.DB, playerIDs []uint, sportID uint) (float64, error) {
	var stats []models.PlayerStats
	if err := tx.Where("player_id IN ? AND sport_id = ?", playerIDs, sportID).
		Find(&stats).Error; err != nil {
		return 0, err
	}
	if len(stats) != len(playerIDs) {
		return 0, fmt.Errorf("missing stats rows for side: %w", apperrors.ErrNotFound)
	}

	ratings := make([]float64, 0, len(stats))
	for _, st := range stats {
		ratings = append(ratings, st.EloRating)
	}
	return utils.TeamAverageElo(ratings), nil
}

// applySideUpdates mutates every member's stats row with relative SQL
// expressions, so two concurrent settlements touching the same player
// never lose each other's increments. Draws touch neither wins nor losses.
func (s *MatchService) applySideUpdates(tx *gorm.DB, playerIDs []uint, sportID uint, result, delta float64, now time.Time) error {
	winInc, lossInc := 0, 0
	switch {
	case result > utils.ResultDraw:
		winInc = 1
	case result < utils.ResultDraw:
		lossInc = 1
	}

	updates := map[string]interface{}{
		"matches_played": gorm.Expr("matches_played + 1"),
		"wins":           gorm.Expr("wins + ?", winInc),
		"losses":         gorm.Expr("losses + ?", lossInc),
		"win_rate":       gorm.Expr("(wins + ?) * 1.0 / (matches_played + 1)", winInc),
		"elo_rating":     gorm.Expr("elo_rating + ?", delta),
		"last_updated":   now,
	}

	return tx.Model(&models.PlayerStats{}).
		Where("player_id IN ? AND sport_id = ?", playerIDs, sportID).
		Updates(updates).Error
}

func (s *MatchService) GetMatchByID(id uint) (*models.Match, error) {
	var match models.Match

	result := s.db.Preload("Sport").
		Preload("Creator").
		Preload("TeamA").Preload("TeamA.Player1").Preload("TeamA.Player2").
		Preload("TeamB").Preload("TeamB.Player1").Preload("TeamB.Player2").
		First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match not found: %w", apperrors.ErrNotFound)
		}
		return nil, result.Error
	}

	return &match, nil
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Order("created_at DESC").
		Limit(limit).
		Preload("Sport").
		Preload("TeamA").Preload("TeamA.Player1").Preload("TeamA.Player2").
		Preload("TeamB").Preload("TeamB.Player1").Preload("TeamB.Player2").
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

type MatchFilters struct {
	SportID  *uint   `json:"sport_id,omitempty"`
	TeamID   *uint   `json:"team_id,omitempty"`
	PlayerID *uint   `json:"player_id,omitempty"`
	Pending  *bool   `json:"pending,omitempty"`
	Page     int     `json:"page"`
	PerPage  int     `json:"per_page"`
}

func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	query := s.db.Model(&models.Match{})

	if filters.SportID != nil {
		query = query.Where("sport_id = ?", *filters.SportID)
	}

	if filters.TeamID != nil {
		query = query.Where("team_a_id = ? OR team_b_id = ?", *filters.TeamID, *filters.TeamID)
	}

	if filters.PlayerID != nil {
		teams, err := s.teamService.GetTeamsByPlayer(*filters.PlayerID)
		if err != nil {
			return nil, err
		}
		if len(teams) == 0 {
			return &models.PaginatedMatchResponse{
				Data:       []models.Match{},
				Page:       filters.Page,
				PageSize:   filters.PerPage,
				TotalPages: 0,
			}, nil
		}

		teamIDs := make([]uint, 0, len(teams))
		for _, team := range teams {
			teamIDs = append(teamIDs, team.ID)
		}
		query = query.Where("team_a_id IN ? OR team_b_id IN ?", teamIDs, teamIDs)
	}

	if filters.Pending != nil {
		if *filters.Pending {
			query = query.Where("winner_team = ?", models.WinnerUnset)
		} else {
			query = query.Where("winner_team <> ?", models.WinnerUnset)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	result := query.
		Offset(offset).
		Limit(filters.PerPage).
		Order("created_at DESC").
		Preload("Sport").
		Preload("TeamA").Preload("TeamA.Player1").Preload("TeamA.Player2").
		Preload("TeamB").Preload("TeamB.Player1").Preload("TeamB.Player2").
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}
