package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/api/middleware"
	"github.com/playscore/playscore-backend/internal/services"
	"github.com/playscore/playscore-backend/internal/utils"
)

type RatingHandler struct {
	ratingService *services.RatingService
}

func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) SubmitRating(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	gameID, err := parseUintParam(c, "game_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid game ID")
		return
	}

	var req services.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	rating, err := h.ratingService.SubmitRating(c.Request.Context(), actor, gameID, req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to submit rating", err)
		return
	}

	utils.SendSuccess(c, "Rating submitted successfully", rating)
}

func (h *RatingHandler) GetGameReviews(c *gin.Context) {
	gameID, err := parseUintParam(c, "game_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid game ID")
		return
	}

	page, limit := paginationQuery(c)

	reviews, total, err := h.ratingService.GetGameReviews(c.Request.Context(), gameID, page, limit)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to fetch reviews", err)
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", gin.H{
		"reviews": reviews,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// DeleteReviewText clears the caller's own written review. The score
// itself stays.
func (h *RatingHandler) DeleteReviewText(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	gameID, err := parseUintParam(c, "game_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid game ID")
		return
	}

	if err := h.ratingService.DeleteReviewText(c.Request.Context(), actor, gameID); err != nil {
		sendModerationError(c, "Failed to delete review", err)
		return
	}

	utils.SendSuccess(c, "Review text removed", nil)
}

func (h *RatingHandler) FlagReview(c *gin.Context) {
	gameID, err := parseUintParam(c, "game_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid game ID")
		return
	}

	var req struct {
		AuthorID uint   `json:"author_id" binding:"required"`
		Reason   string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Author and flag reason are required")
		return
	}

	if err := h.ratingService.FlagReview(c.Request.Context(), req.AuthorID, gameID, req.Reason); err != nil {
		sendModerationError(c, "Failed to flag review", err)
		return
	}

	utils.SendSuccess(c, "Review flagged for review", nil)
}
