package handlers

import (
	"net/http"
	"strconv"

	"matchpoint-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetLeaderboard returns a sport's ladder ordered by rating
// @Summary Get the leaderboard for a sport
// @Tags stats
// @Produce json
// @Param sportId path int true "Sport ID"
// @Param limit query int false "Number of entries (default: 50, max: 100)"
// @Success 200 {array} models.PlayerStats
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /stats/leaderboard/{sportId} [get]
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	sportID, err := strconv.ParseUint(c.Param("sportId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport id"})
		return
	}

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	leaderboard, err := h.statsService.GetLeaderboard(uint(sportID), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

// GetPlayerStats returns one (player, sport) stats row
// @Summary Get a player's stats in a sport
// @Tags stats
// @Produce json
// @Param playerId path int true "Player ID"
// @Param sportId path int true "Sport ID"
// @Success 200 {object} models.PlayerStats
// @Failure 404 {object} map[string]string
// @Router /stats/player/{playerId}/sport/{sportId} [get]
func (h *StatsHandler) GetPlayerStats(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("playerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id"})
		return
	}

	sportID, err := strconv.ParseUint(c.Param("sportId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport id"})
		return
	}

	stats, err := h.statsService.GetPlayerStats(uint(playerID), uint(sportID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetAllPlayerStats returns a player's stats across all sports
// @Summary Get a player's stats in every sport
// @Tags stats
// @Produce json
// @Param playerId path int true "Player ID"
// @Success 200 {array} models.PlayerStats
// @Router /stats/player/{playerId} [get]
func (h *StatsHandler) GetAllPlayerStats(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("playerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id"})
		return
	}

	stats, err := h.statsService.GetAllStats(uint(playerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
