package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/api/middleware"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/internal/utils"
)

type ModerationHandler struct {
	queue   *moderation.Queue
	machine *moderation.StateMachine
}

func NewModerationHandler(queue *moderation.Queue, machine *moderation.StateMachine) *ModerationHandler {
	return &ModerationHandler{queue: queue, machine: machine}
}

type moderateRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

type batchModerateRequest struct {
	Items  []string `json:"items" binding:"required"`
	Action string   `json:"action" binding:"required"`
	Reason string   `json:"reason"`
}

type batchResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// GetFeed returns one page of the merged moderation feed.
func (h *ModerationHandler) GetFeed(c *gin.Context) {
	status, err := moderation.ParseStatus(c.DefaultQuery("status", "pending"))
	if err != nil {
		utils.SendValidationError(c, "Status must be pending, approved or flagged")
		return
	}

	page, limit := paginationQuery(c)

	feed, err := h.queue.ListByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		sendModerationError(c, "Failed to fetch moderation feed", err)
		return
	}

	utils.SendSuccess(c, "Moderation feed retrieved successfully", feed)
}

func (h *ModerationHandler) GetCounts(c *gin.Context) {
	counts, err := h.queue.Counts(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch moderation counts", err)
		return
	}

	utils.SendSuccess(c, "Moderation counts retrieved successfully", counts)
}

func (h *ModerationHandler) GetItem(c *gin.Context) {
	item, err := h.queue.Resolve(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		sendModerationError(c, "Failed to resolve content item", err)
		return
	}

	utils.SendSuccess(c, "Content item retrieved successfully", item.Entry())
}

// ModerateItem applies an approve or reject transition to one item.
func (h *ModerationHandler) ModerateItem(c *gin.Context) {
	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	actor := middleware.CurrentActor(c)
	itemID := c.Param("item_id")

	if err := h.moderate(c, actor, itemID, req.Action, req.Reason); err != nil {
		sendModerationError(c, "Failed to moderate content item", err)
		return
	}

	utils.SendSuccess(c, "Content item moderated successfully", nil)
}

func (h *ModerationHandler) DeleteItem(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	item, err := h.queue.Resolve(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		sendModerationError(c, "Failed to resolve content item", err)
		return
	}

	if err := h.machine.Delete(c.Request.Context(), actor, item); err != nil {
		sendModerationError(c, "Failed to delete content item", err)
		return
	}

	utils.SendSuccess(c, "Content item deleted successfully", nil)
}

// BatchModerate applies one action to many items independently. A
// failure on one item never aborts the rest; the response reports
// per-item outcomes.
func (h *ModerationHandler) BatchModerate(c *gin.Context) {
	var req batchModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	actor := middleware.CurrentActor(c)

	results := make([]batchResult, 0, len(req.Items))
	for _, id := range req.Items {
		result := batchResult{ID: id, Success: true}
		if err := h.moderate(c, actor, id, req.Action, req.Reason); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	utils.SendSuccess(c, "Batch moderation completed", results)
}

func (h *ModerationHandler) moderate(c *gin.Context, actor moderation.Actor, itemID, action, reason string) error {
	item, err := h.queue.Resolve(c.Request.Context(), itemID)
	if err != nil {
		return err
	}

	switch action {
	case "approve":
		return h.machine.Approve(c.Request.Context(), actor, item)
	case "reject":
		return h.machine.Reject(c.Request.Context(), actor, item, reason)
	default:
		return moderation.ErrInvalidAction
	}
}
