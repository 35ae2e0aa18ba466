package services

import (
	"testing"

	"matchpoint-api/packages/core/apperrors"
	"matchpoint-api/packages/core/models"
	"matchpoint-api/packages/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCreateMatchPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Table Tennis")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	match, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
	})
	require.NoError(t, err)

	assert.False(t, match.Finished())
	assert.Equal(t, models.WinnerUnset, match.WinnerTeam)
	assert.Equal(t, 0, match.ScoreA)
	assert.Equal(t, 0, match.ScoreB)

	// No settlement yet, so no stats movement either.
	var count int64
	require.NoError(t, db.Model(&models.PlayerStats{}).Where("matches_played > 0").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateMatchRejectsPartialScore(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Table Tennis")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	_, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
		ScoreA:       intPtr(11),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
		ScoreB:       intPtr(7),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Nothing half-created along the way.
	var count int64
	require.NoError(t, db.Model(&models.Match{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateMatchUnknownSport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	_, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      4242,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateMatchRejectsSelfPlay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Table Tennis")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	_, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID, p2.ID},
		TeamBPlayers: []uint{p2.ID, p1.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateMatchWithScoresSettlesImmediately(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Table Tennis")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	match, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
		ScoreA:       intPtr(11),
		ScoreB:       intPtr(7),
	})
	require.NoError(t, err)

	assert.True(t, match.Finished())
	assert.Equal(t, models.WinnerTeamA, match.WinnerTeam)

	statsSvc := NewStatsService(db)

	statsA, err := statsSvc.GetPlayerStats(p1.ID, sport.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1016, statsA.EloRating, 1e-6)
	assert.Equal(t, 1, statsA.MatchesPlayed)
	assert.Equal(t, 1, statsA.Wins)
	assert.Equal(t, 0, statsA.Losses)
	assert.InDelta(t, 1.0, statsA.WinRate, 1e-9)

	statsB, err := statsSvc.GetPlayerStats(p2.ID, sport.ID)
	require.NoError(t, err)
	assert.InDelta(t, 984, statsB.EloRating, 1e-6)
	assert.Equal(t, 1, statsB.MatchesPlayed)
	assert.Equal(t, 0, statsB.Wins)
	assert.Equal(t, 1, statsB.Losses)
	assert.InDelta(t, 0.0, statsB.WinRate, 1e-9)
}

func TestSettleMatchDraw(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Table Tennis")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	match, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
	})
	require.NoError(t, err)

	settled, err := svc.SettleMatch(match.ID, 5, 5, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WinnerDraw, settled.WinnerTeam)

	statsSvc := NewStatsService(db)
	for _, playerID := range []uint{p1.ID, p2.ID} {
		stats, err := statsSvc.GetPlayerStats(playerID, sport.ID)
		require.NoError(t, err)
		assert.InDelta(t, 1000, stats.EloRating, 1e-9)
		assert.Equal(t, 1, stats.MatchesPlayed)
		assert.Equal(t, 0, stats.Wins)
		assert.Equal(t, 0, stats.Losses)
	}
}

func TestSettleMatchSharedDeltaForDuo(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Foosball")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")
	solo := createTestPlayer(t, db, "carol")

	// Uneven duo (avg 1100) against a 900-rated solo player.
	createTestStats(t, db, p1.ID, sport.ID, 1000)
	createTestStats(t, db, p2.ID, sport.ID, 1200)
	createTestStats(t, db, solo.ID, sport.ID, 900)

	match, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID, p2.ID},
		TeamBPlayers: []uint{solo.ID},
		ScoreA:       intPtr(3),
		ScoreB:       intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, models.WinnerTeamB, match.WinnerTeam)

	newAvg, _ := utils.UpdateElo(1100, 900, utils.ResultLoss)
	wantDelta := newAvg - 1100
	require.Negative(t, wantDelta)

	statsSvc := NewStatsService(db)

	stats1, err := statsSvc.GetPlayerStats(p1.ID, sport.ID)
	require.NoError(t, err)
	stats2, err := statsSvc.GetPlayerStats(p2.ID, sport.ID)
	require.NoError(t, err)

	// Both members of the losing duo move by the identical team delta
	// despite different individual ratings.
	assert.InDelta(t, 1000+wantDelta, stats1.EloRating, 1e-6)
	assert.InDelta(t, 1200+wantDelta, stats2.EloRating, 1e-6)
	assert.InDelta(t, stats1.EloRating-1000, stats2.EloRating-1200, 1e-9)

	statsSolo, err := statsSvc.GetPlayerStats(solo.ID, sport.ID)
	require.NoError(t, err)
	assert.InDelta(t, 900-wantDelta, statsSolo.EloRating, 1e-6)
	assert.Equal(t, 1, statsSolo.Wins)
}

func TestSettleMatchTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Table Tennis")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	match, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
	})
	require.NoError(t, err)

	_, err = svc.SettleMatch(match.ID, 11, 9, p1.ID)
	require.NoError(t, err)

	_, err = svc.SettleMatch(match.ID, 11, 9, p1.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Exactly one settlement was applied.
	statsSvc := NewStatsService(db)
	stats, err := statsSvc.GetPlayerStats(p1.ID, sport.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MatchesPlayed)
}

func TestSettleMatchRequiresParticipant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Table Tennis")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")
	outsider := createTestPlayer(t, db, "mallory")

	match, err := svc.CreateMatch(outsider.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
	})
	require.NoError(t, err)

	// Even the creator may not report unless they played.
	_, err = svc.SettleMatch(match.ID, 11, 9, outsider.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.SettleMatch(match.ID, 11, 9, p2.ID)
	require.NoError(t, err)
}

func TestSettleMatchNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	p1 := createTestPlayer(t, db, "alice")

	_, err := svc.SettleMatch(31337, 1, 0, p1.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetMatchesFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMatchService(db)

	sport := createTestSport(t, db, "Badminton")
	other := createTestSport(t, db, "Foosball")
	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")
	p3 := createTestPlayer(t, db, "carol")

	_, err := svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      sport.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p2.ID},
		ScoreA:       intPtr(21),
		ScoreB:       intPtr(15),
	})
	require.NoError(t, err)

	_, err = svc.CreateMatch(p1.ID, models.CreateMatchRequest{
		SportID:      other.ID,
		TeamAPlayers: []uint{p1.ID},
		TeamBPlayers: []uint{p3.ID},
	})
	require.NoError(t, err)

	bySport, err := svc.GetMatches(MatchFilters{SportID: &sport.ID, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, bySport.Total)

	pending := true
	byPending, err := svc.GetMatches(MatchFilters{Pending: &pending, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byPending.Total)

	byPlayer, err := svc.GetMatches(MatchFilters{PlayerID: &p1.ID, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byPlayer.Total)

	byOpponent, err := svc.GetMatches(MatchFilters{PlayerID: &p2.ID, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byOpponent.Total)
}
