package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/services"
	"github.com/playscore/playscore-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	resp, err := h.authService.Signup(req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to sign up", err)
		return
	}

	utils.SendSuccess(c, "Account created successfully", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		utils.SendUnauthorized(c, "Invalid credentials")
		return
	}

	utils.SendSuccess(c, "Logged in successfully", resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	resp, err := h.authService.RefreshToken(req)
	if err != nil {
		utils.SendUnauthorized(c, "Invalid refresh token")
		return
	}

	utils.SendSuccess(c, "Token refreshed successfully", resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.authService.Logout(userID); err != nil {
		utils.SendInternalError(c, "Failed to log out", err)
		return
	}

	utils.SendSuccess(c, "Logged out successfully", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		utils.SendNotFound(c, "User not found")
		return
	}

	utils.SendSuccess(c, "Profile retrieved successfully", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	user, err := h.authService.UpdateProfile(userID, req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to update profile", err)
		return
	}

	utils.SendSuccess(c, "Profile updated successfully", user)
}
