package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/services"
	"github.com/playscore/playscore-backend/internal/utils"
)

type GameHandler struct {
	gameService   *services.GameService
	ratingService *services.RatingService
}

func NewGameHandler(gameService *services.GameService, ratingService *services.RatingService) *GameHandler {
	return &GameHandler{gameService: gameService, ratingService: ratingService}
}

func (h *GameHandler) GetGames(c *gin.Context) {
	var filter services.GameFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	resp, err := h.gameService.GetGames(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFilter) {
			utils.SendError(c, http.StatusBadRequest, "Invalid filter parameters", err)
			return
		}
		utils.SendInternalError(c, "Failed to fetch games", err)
		return
	}

	utils.SendSuccess(c, "Games retrieved successfully", resp)
}

func (h *GameHandler) GetGame(c *gin.Context) {
	gameID, err := parseUintParam(c, "game_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid game ID")
		return
	}

	game, err := h.gameService.GetGameByID(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			utils.SendNotFound(c, "Game not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch game", err)
		return
	}

	average, err := h.ratingService.GetGameAverage(c.Request.Context(), gameID)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch game score", err)
		return
	}

	utils.SendSuccess(c, "Game retrieved successfully", gin.H{
		"game":    game,
		"average": average,
	})
}

func (h *GameHandler) GetGenres(c *gin.Context) {
	genres, err := h.gameService.GetGenres(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch genres", err)
		return
	}

	utils.SendSuccess(c, "Genres retrieved successfully", genres)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func paginationQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
