package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/services"
	"github.com/playscore/playscore-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboard(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch dashboard", err)
		return
	}

	utils.SendSuccess(c, "Dashboard retrieved successfully", stats)
}

func (h *AdminHandler) GetPendingSubmissions(c *gin.Context) {
	page, limit := paginationQuery(c)

	games, total, err := h.adminService.GetPendingSubmissions(c.Request.Context(), page, limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch submissions", err)
		return
	}

	utils.SendSuccess(c, "Pending submissions retrieved successfully", gin.H{
		"games": games,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *AdminHandler) ReviewSubmission(c *gin.Context) {
	gameID, err := parseUintParam(c, "game_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid game ID")
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	game, err := h.adminService.ReviewSubmission(c.Request.Context(), gameID, req.Action, req.Reason)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to review submission", err)
		return
	}

	utils.SendSuccess(c, "Submission reviewed successfully", game)
}

func (h *AdminHandler) SearchCatalog(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.SendValidationError(c, "Search query is required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	games, err := h.adminService.SearchCatalog(query, page)
	if err != nil {
		utils.SendInternalError(c, "Catalog search failed", err)
		return
	}

	utils.SendSuccess(c, "Catalog search completed", games)
}

func (h *AdminHandler) ImportGame(c *gin.Context) {
	var req struct {
		ExternalID string `json:"external_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "External game ID is required")
		return
	}

	game, err := h.adminService.ImportGame(c.Request.Context(), req.ExternalID)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to import game", err)
		return
	}

	utils.SendSuccess(c, "Game imported successfully", game)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := paginationQuery(c)

	resp, err := h.adminService.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch users", err)
		return
	}

	utils.SendSuccess(c, "Users retrieved successfully", resp)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Role is required")
		return
	}

	user, err := h.adminService.UpdateUserRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to update role", err)
		return
	}

	utils.SendSuccess(c, "Role updated successfully", user)
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		utils.SendValidationError(c, "Invalid user ID")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "is_active is required")
		return
	}

	if err := h.adminService.SetUserActive(c.Request.Context(), userID, *req.IsActive); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to update user", err)
		return
	}

	utils.SendSuccess(c, "User updated successfully", nil)
}
