package services

import (
	"errors"
	"fmt"
	"strings"

	"matchpoint-api/packages/core/apperrors"
	"matchpoint-api/packages/core/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		db: db,
	}
}

// Resolve returns the team holding exactly the given member set, creating
// it if it does not exist yet. The lookup is order-insensitive: {7,3} and
// {3,7} resolve to the same team. A unique index on the canonical member
// key guarantees that two concurrent resolves never both create a team;
// the loser of the race re-reads the winner's row.
func (s *TeamService) Resolve(playerIDs []uint) (*models.Team, error) {
	if len(playerIDs) < 1 || len(playerIDs) > 2 {
		return nil, fmt.Errorf("a team must have one or two players: %w", apperrors.ErrValidation)
	}
	if len(playerIDs) == 2 && playerIDs[0] == playerIDs[1] {
		return nil, fmt.Errorf("a team cannot contain the same player twice: %w", apperrors.ErrValidation)
	}

	players, err := s.findPlayers(playerIDs)
	if err != nil {
		return nil, err
	}

	key := models.TeamMemberKey(playerIDs)

	team, err := s.findByMemberKey(key)
	if err == nil {
		return team, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := teamName(playerIDs, players)
	team = &models.Team{
		Player1ID: playerIDs[0],
		MemberKey: key,
		Name:      name,
		Slug:      s.generateUniqueSlug(name),
	}
	if len(playerIDs) == 2 {
		team.Player2ID = &playerIDs[1]
	}

	if err := s.db.Create(team).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the create race against a concurrent resolve.
			return s.findByMemberKey(key)
		}
		return nil, err
	}

	return s.GetTeamByID(team.ID)
}

func (s *TeamService) GetTeamByID(id uint) (*models.Team, error) {
	var team models.Team

	result := s.db.Preload("Player1").Preload("Player2").First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("team not found: %w", apperrors.ErrNotFound)
		}
		return nil, result.Error
	}

	return &team, nil
}

func (s *TeamService) GetAllTeams() ([]models.Team, error) {
	var teams []models.Team

	result := s.db.Preload("Player1").Preload("Player2").
		Order("created_at DESC").
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (s *TeamService) GetTeamsByPlayer(playerID uint) ([]models.Team, error) {
	var teams []models.Team

	result := s.db.Where("player1_id = ? OR player2_id = ?", playerID, playerID).
		Preload("Player1").Preload("Player2").
		Order("created_at DESC").
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

// AddPlayer fills the second slot of a solo team. Roster edits live outside
// the match settlement fast path.
func (s *TeamService) AddPlayer(teamID, playerID uint) (*models.Team, error) {
	team, err := s.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}

	if team.Player2ID != nil {
		return nil, fmt.Errorf("team is already full: %w", apperrors.ErrValidation)
	}
	if team.Player1ID == playerID {
		return nil, fmt.Errorf("player is already in the team: %w", apperrors.ErrValidation)
	}

	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player not found: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}

	name := fmt.Sprintf("%s & %s", team.Player1.Username, player.Username)
	updates := map[string]interface{}{
		"player2_id": playerID,
		"member_key": models.TeamMemberKey([]uint{team.Player1ID, playerID}),
		"name":       name,
		"slug":       s.generateUniqueSlug(name),
	}

	// Plain model, not the preloaded struct: gorm would otherwise re-derive
	// the foreign keys from the loaded associations and override the map.
	if err := s.db.Model(&models.Team{}).Where("id = ?", team.ID).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a team with these players already exists: %w", apperrors.ErrConflict)
		}
		return nil, err
	}

	return s.GetTeamByID(teamID)
}

// RemovePlayer takes a member out of a team. Removing the first member of a
// duo shifts the second into its place; emptying a solo team deletes the
// team outright (hard delete, so the member key is free for reuse).
func (s *TeamService) RemovePlayer(teamID, playerID uint) (*models.Team, error) {
	team, err := s.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}

	if !team.HasPlayer(playerID) {
		return nil, fmt.Errorf("player does not belong to this team: %w", apperrors.ErrValidation)
	}

	if team.Player1ID == playerID && team.Player2ID == nil {
		if err := s.db.Unscoped().Delete(team).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	remaining := team.Player1ID
	remainingName := team.Player1.Username
	if team.Player1ID == playerID {
		remaining = *team.Player2ID
		remainingName = team.Player2.Username
	}

	updates := map[string]interface{}{
		"player1_id": remaining,
		"player2_id": nil,
		"member_key": models.TeamMemberKey([]uint{remaining}),
		"name":       remainingName,
		"slug":       s.generateUniqueSlug(remainingName),
	}

	if err := s.db.Model(&models.Team{}).Where("id = ?", team.ID).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a solo team for this player already exists: %w", apperrors.ErrConflict)
		}
		return nil, err
	}

	return s.GetTeamByID(teamID)
}

func (s *TeamService) findByMemberKey(key string) (*models.Team, error) {
	var team models.Team

	// Ascending id keeps the pick deterministic should duplicates ever
	// slip in below the unique index.
	result := s.db.Where("member_key = ?", key).
		Order("id ASC").
		Preload("Player1").Preload("Player2").
		First(&team)
	if result.Error != nil {
		return nil, result.Error
	}

	return &team, nil
}

func (s *TeamService) findPlayers(playerIDs []uint) ([]models.Player, error) {
	var players []models.Player

	if err := s.db.Where("id IN ?", playerIDs).Find(&players).Error; err != nil {
		return nil, err
	}
	if len(players) != len(playerIDs) {
		return nil, fmt.Errorf("at least one player does not exist: %w", apperrors.ErrNotFound)
	}

	return players, nil
}

// teamName joins usernames in the order the caller supplied the ids.
func teamName(playerIDs []uint, players []models.Player) string {
	byID := make(map[uint]string, len(players))
	for _, p := range players {
		byID[p.ID] = p.Username
	}

	names := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		names = append(names, byID[id])
	}
	return strings.Join(names, " & ")
}

func (s *TeamService) generateUniqueSlug(name string) string {
	baseSlug := slug.Make(name)
	candidate := baseSlug
	counter := 1

	for {
		var existing models.Team
		result := s.db.Where("slug = ?", candidate).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			break
		}

		candidate = fmt.Sprintf("%s-%d", baseSlug, counter)
		counter++
	}

	return candidate
}
