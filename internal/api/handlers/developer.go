package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/services"
	"github.com/playscore/playscore-backend/internal/utils"
)

type DeveloperHandler struct {
	gameService *services.GameService
}

func NewDeveloperHandler(gameService *services.GameService) *DeveloperHandler {
	return &DeveloperHandler{gameService: gameService}
}

// SubmitGame accepts a developer game submission as JSON or as
// multipart form data with cover images.
func (h *DeveloperHandler) SubmitGame(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.SubmitGameRequest
	var imageFiles []*multipart.FileHeader

	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendValidationError(c, "Invalid JSON data: "+err.Error())
			return
		}
	} else {
		req.Title = c.PostForm("title")
		req.Description = c.PostForm("description")
		req.Genre = c.PostForm("genre")
		req.Developer = c.PostForm("developer")
		req.ReleaseDate = c.PostForm("release_date")

		form, err := c.MultipartForm()
		if err == nil && form.File["covers"] != nil {
			imageFiles = form.File["covers"]
		}
	}

	if req.Title == "" {
		utils.SendValidationError(c, "Game title is required")
		return
	}

	game, err := h.gameService.SubmitGame(c.Request.Context(), userID, &req, imageFiles)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to submit game", err)
		return
	}

	utils.SendSuccess(c, "Game submitted for review", game)
}

func (h *DeveloperHandler) GetOwnSubmissions(c *gin.Context) {
	userID := c.GetUint("user_id")

	games, err := h.gameService.GetDeveloperGames(c.Request.Context(), userID)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch submissions", err)
		return
	}

	utils.SendSuccess(c, "Submissions retrieved successfully", games)
}
