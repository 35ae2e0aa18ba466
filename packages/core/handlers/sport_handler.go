package handlers

import (
	"net/http"
	"strconv"

	"matchpoint-api/packages/core/models"
	"matchpoint-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type SportHandler struct {
	sportService *services.SportService
}

func NewSportHandler(sportService *services.SportService) *SportHandler {
	return &SportHandler{
		sportService: sportService,
	}
}

// CreateSport adds a new sport
// @Summary Create a sport
// @Description Admin only. Opens stats rows for every existing player.
// @Tags sports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sport body models.CreateSportRequest true "Sport data"
// @Success 201 {object} models.Sport
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sports [post]
func (h *SportHandler) CreateSport(c *gin.Context) {
	var req models.CreateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sport, err := h.sportService.CreateSport(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sport)
}

// GetSports lists all sports
// @Summary List sports
// @Tags sports
// @Produce json
// @Success 200 {array} models.Sport
// @Router /sports [get]
func (h *SportHandler) GetSports(c *gin.Context) {
	sports, err := h.sportService.GetAllSports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sports"})
		return
	}

	c.JSON(http.StatusOK, sports)
}

// GetSport retrieves one sport
// @Summary Get a sport by id
// @Tags sports
// @Produce json
// @Param id path int true "Sport ID"
// @Success 200 {object} models.Sport
// @Failure 404 {object} map[string]string
// @Router /sports/{id} [get]
func (h *SportHandler) GetSport(c *gin.Context) {
	sportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport id"})
		return
	}

	sport, err := h.sportService.GetSportByID(uint(sportID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sport)
}

// UpdateSport renames a sport
// @Summary Update a sport
// @Tags sports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Sport ID"
// @Param sport body models.UpdateSportRequest true "Fields to update"
// @Success 200 {object} models.Sport
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sports/{id} [put]
func (h *SportHandler) UpdateSport(c *gin.Context) {
	sportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport id"})
		return
	}

	var req models.UpdateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sport, err := h.sportService.UpdateSport(uint(sportID), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sport)
}

// DeleteSport removes a sport without matches
// @Summary Delete a sport
// @Description Admin only. Refused while matches reference the sport.
// @Tags sports
// @Security BearerAuth
// @Produce json
// @Param id path int true "Sport ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sports/{id} [delete]
func (h *SportHandler) DeleteSport(c *gin.Context) {
	sportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport id"})
		return
	}

	if err := h.sportService.DeleteSport(uint(sportID)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
