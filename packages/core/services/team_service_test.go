package services

import (
	"testing"

	"matchpoint-api/packages/core/apperrors"
	"matchpoint-api/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatesTeamOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	team, err := svc.Resolve([]uint{p1.ID, p2.ID})
	require.NoError(t, err)
	require.NotNil(t, team)

	// Reversed member order must resolve to the same team.
	again, err := svc.Resolve([]uint{p2.ID, p1.ID})
	require.NoError(t, err)
	assert.Equal(t, team.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Team{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveSoloTeamIsDistinct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	duo, err := svc.Resolve([]uint{p1.ID, p2.ID})
	require.NoError(t, err)

	solo, err := svc.Resolve([]uint{p1.ID})
	require.NoError(t, err)

	assert.NotEqual(t, duo.ID, solo.ID)
	assert.Equal(t, 1, solo.MemberCount())
	assert.Equal(t, 2, duo.MemberCount())
}

func TestResolveRejectsBadTeamSize(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")
	p3 := createTestPlayer(t, db, "carol")

	_, err := svc.Resolve(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Resolve([]uint{p1.ID, p2.ID, p3.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Resolve([]uint{p1.ID, p1.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolveRejectsUnknownPlayer(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")

	_, err := svc.Resolve([]uint{p1.ID, 9999})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolveNameFollowsSuppliedOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	team, err := svc.Resolve([]uint{p2.ID, p1.ID})
	require.NoError(t, err)
	assert.Equal(t, "bob & alice", team.Name)
}

func TestAddPlayerFillsSoloTeam(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	solo, err := svc.Resolve([]uint{p1.ID})
	require.NoError(t, err)

	duo, err := svc.AddPlayer(solo.ID, p2.ID)
	require.NoError(t, err)
	require.NotNil(t, duo.Player2ID)
	assert.Equal(t, p2.ID, *duo.Player2ID)

	// The member key moved with the roster.
	resolved, err := svc.Resolve([]uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Equal(t, duo.ID, resolved.ID)
}

func TestAddPlayerRejectsFullTeamAndDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")
	p3 := createTestPlayer(t, db, "carol")

	duo, err := svc.Resolve([]uint{p1.ID, p2.ID})
	require.NoError(t, err)

	_, err = svc.AddPlayer(duo.ID, p3.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	solo, err := svc.Resolve([]uint{p3.ID})
	require.NoError(t, err)

	_, err = svc.AddPlayer(solo.ID, p3.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAddPlayerConflictsWithExistingPair(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	_, err := svc.Resolve([]uint{p1.ID, p2.ID})
	require.NoError(t, err)

	solo, err := svc.Resolve([]uint{p1.ID})
	require.NoError(t, err)

	// Filling the solo team would duplicate the existing pair.
	_, err = svc.AddPlayer(solo.ID, p2.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRemovePlayerShiftsAndDeletes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	duo, err := svc.Resolve([]uint{p1.ID, p2.ID})
	require.NoError(t, err)

	remaining, err := svc.RemovePlayer(duo.ID, p1.ID)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Equal(t, p2.ID, remaining.Player1ID)
	assert.Nil(t, remaining.Player2ID)

	gone, err := svc.RemovePlayer(duo.ID, p2.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	_, err = svc.GetTeamByID(duo.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemovePlayerPersistsRosterColumns(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	duo, err := svc.Resolve([]uint{p1.ID, p2.ID})
	require.NoError(t, err)

	_, err = svc.RemovePlayer(duo.ID, p1.ID)
	require.NoError(t, err)

	// The stored row must match the new roster, not just the returned value.
	var row models.Team
	require.NoError(t, db.First(&row, duo.ID).Error)
	assert.Equal(t, p2.ID, row.Player1ID)
	assert.Nil(t, row.Player2ID)
	assert.Equal(t, models.TeamMemberKey([]uint{p2.ID}), row.MemberKey)
	assert.Equal(t, "bob", row.Name)

	// Resolving the remaining solo member reuses the shrunken team.
	solo, err := svc.Resolve([]uint{p2.ID})
	require.NoError(t, err)
	assert.Equal(t, duo.ID, solo.ID)
	assert.Equal(t, 1, solo.MemberCount())
}

func TestAddPlayerPersistsRosterColumns(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	p1 := createTestPlayer(t, db, "alice")
	p2 := createTestPlayer(t, db, "bob")

	solo, err := svc.Resolve([]uint{p1.ID})
	require.NoError(t, err)

	_, err = svc.AddPlayer(solo.ID, p2.ID)
	require.NoError(t, err)

	var row models.Team
	require.NoError(t, db.First(&row, solo.ID).Error)
	require.NotNil(t, row.Player2ID)
	assert.Equal(t, p2.ID, *row.Player2ID)
	assert.Equal(t, models.TeamMemberKey([]uint{p1.ID, p2.ID}), row.MemberKey)
}

func TestTeamMemberKeyIsOrderInsensitive(t *testing.T) {
	assert.Equal(t, models.TeamMemberKey([]uint{7, 3}), models.TeamMemberKey([]uint{3, 7}))
	assert.NotEqual(t, models.TeamMemberKey([]uint{7}), models.TeamMemberKey([]uint{7, 3}))
}
