package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/api/middleware"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/internal/services"
	"github.com/playscore/playscore-backend/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), actor, req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to create comment", err)
		return
	}

	utils.SendSuccess(c, "Comment created successfully", comment)
}

func (h *CommentHandler) GetGameComments(c *gin.Context) {
	gameID, err := parseUintParam(c, "game_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid game ID")
		return
	}

	page, limit := paginationQuery(c)

	comments, total, err := h.commentService.GetGameComments(c.Request.Context(), gameID, page, limit)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to fetch comments", err)
		return
	}

	utils.SendSuccess(c, "Comments retrieved successfully", gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid comment ID")
		return
	}

	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), actor, commentID, req)
	if err != nil {
		sendModerationError(c, "Failed to update comment", err)
		return
	}

	utils.SendSuccess(c, "Comment updated successfully", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		sendModerationError(c, "Failed to delete comment", err)
		return
	}

	utils.SendSuccess(c, "Comment deleted successfully", nil)
}

func (h *CommentHandler) FlagComment(c *gin.Context) {
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid comment ID")
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Flag reason is required")
		return
	}

	if err := h.commentService.FlagComment(c.Request.Context(), commentID, req.Reason); err != nil {
		sendModerationError(c, "Failed to flag comment", err)
		return
	}

	utils.SendSuccess(c, "Comment flagged for review", nil)
}

// sendModerationError translates core sentinel errors into HTTP status
// codes; everything else is an internal error.
func sendModerationError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, moderation.ErrInvalidIdentifier),
		errors.Is(err, moderation.ErrEmptyReason),
		errors.Is(err, moderation.ErrInvalidStatus),
		errors.Is(err, moderation.ErrInvalidAction),
		errors.Is(err, moderation.ErrInvalidPage):
		utils.SendError(c, http.StatusBadRequest, message, err)
	case errors.Is(err, moderation.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, message, err)
	case errors.Is(err, moderation.ErrForbidden):
		utils.SendError(c, http.StatusForbidden, message, err)
	default:
		utils.SendInternalError(c, message, err)
	}
}
