package handlers

import (
	"net/http"
	"strconv"

	"matchpoint-api/packages/core/models"
	"matchpoint-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ResolveTeam finds or creates the team for a member set
// @Summary Resolve a team
// @Description Return the team holding exactly this set of 1 or 2 players, creating it if needed. Member order does not matter.
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param team body models.CreateTeamRequest true "Member player ids"
// @Success 200 {object} models.Team
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams [post]
func (h *TeamHandler) ResolveTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Resolve(req.Players)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// GetTeams lists all teams
// @Summary List teams
// @Tags teams
// @Produce json
// @Param player_id query int false "Only teams including this player"
// @Success 200 {array} models.Team
// @Router /teams [get]
func (h *TeamHandler) GetTeams(c *gin.Context) {
	if playerIDStr := c.Query("player_id"); playerIDStr != "" {
		playerID, err := strconv.ParseUint(playerIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player_id parameter"})
			return
		}

		teams, err := h.teamService.GetTeamsByPlayer(uint(playerID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
			return
		}
		c.JSON(http.StatusOK, teams)
		return
	}

	teams, err := h.teamService.GetAllTeams()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam retrieves one team
// @Summary Get a team by id
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Team
// @Failure 404 {object} map[string]string
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team id"})
		return
	}

	team, err := h.teamService.GetTeamByID(uint(teamID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// AddPlayer fills the second slot of a solo team
// @Summary Add a player to a team
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param player body models.AddTeamPlayerRequest true "Player to add"
// @Success 200 {object} models.Team
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{id}/players [post]
func (h *TeamHandler) AddPlayer(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team id"})
		return
	}

	var req models.AddTeamPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.AddPlayer(uint(teamID), req.PlayerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// RemovePlayer takes a member out of a team
// @Summary Remove a player from a team
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Team ID"
// @Param playerId path int true "Player ID"
// @Success 200 {object} models.Team
// @Success 204 "Team deleted because it became empty"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/{id}/players/{playerId} [delete]
func (h *TeamHandler) RemovePlayer(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team id"})
		return
	}

	playerID, err := strconv.ParseUint(c.Param("playerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id"})
		return
	}

	team, err := h.teamService.RemovePlayer(uint(teamID), uint(playerID))
	if err != nil {
		respondError(c, err)
		return
	}

	if team == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, team)
}
