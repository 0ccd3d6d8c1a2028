package services

import (
	"errors"
	"time"

	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *EmailService
	baseURL      string
}

func NewAuthService(db *gorm.DB, jwtSecret string, emailService *EmailService, baseURL string) *AuthService {
	return &AuthService{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
		baseURL:      baseURL,
	}
}

type SignupRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email" binding:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type AuthResponse struct {
	Token utils.TokenPair `json:"tokens"`
	User  models.User     `json:"user"`
}

func (s *AuthService) Signup(req SignupRequest) (*AuthResponse, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, errors.New("password must be at least 8 characters")
	}
	if !utils.IsValidUsername(req.Username) {
		return nil, errors.New("username must be 3-30 characters (letters, digits, underscore)")
	}

	// Self-service signup is limited to the unprivileged roles
	if req.Role == "" {
		req.Role = "user"
	}
	if !utils.IsValidSignupRole(req.Role) {
		return nil, errors.New("invalid role")
	}

	var existingUser models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existingUser).Error; err == nil {
		return nil, errors.New("user already exists")
	}

	user := models.User{
		Email:       utils.SanitizeString(req.Email),
		Password:    req.Password, // Will be hashed in BeforeCreate hook
		Username:    utils.SanitizeString(req.Username),
		DisplayName: utils.SanitizeString(req.DisplayName),
		Role:        req.Role,
		IsActive:    true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, errors.New("failed to create user")
	}

	tokenPair, err := s.issueTokens(&user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: *tokenPair, User: user}, nil
}

func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}

	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error; err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !user.CheckPassword(req.Password) {
		return nil, errors.New("invalid credentials")
	}

	// Revoke all existing refresh tokens for this user
	s.db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Update("is_revoked", true)

	tokenPair, err := s.issueTokens(&user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: *tokenPair, User: user}, nil
}

func (s *AuthService) RefreshToken(req RefreshRequest) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	if claims.Type != string(utils.RefreshToken) {
		return nil, errors.New("invalid token type")
	}

	var refreshToken models.RefreshToken
	if err := s.db.Where("token = ? AND is_revoked = ? AND expires_at > ?", req.RefreshToken, false, time.Now()).
		First(&refreshToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or expired")
		}
		return nil, err
	}

	var user models.User
	if err := s.db.Where("id = ? AND is_active = ?", refreshToken.UserID, true).
		First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	refreshToken.IsRevoked = true
	if err := tx.Save(&refreshToken).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("failed to revoke old token")
	}

	tokenPair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		tx.Rollback()
		return nil, errors.New("failed to generate new tokens")
	}

	newRefresh := models.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
		IsRevoked: false,
	}
	if err := tx.Create(&newRefresh).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("failed to store refresh token")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("failed to commit token refresh")
	}

	return &AuthResponse{Token: *tokenPair, User: user}, nil
}

func (s *AuthService) Logout(userID uint) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("is_revoked", true).Error
}

func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	if req.Email != user.Email {
		var existing models.User
		if err := s.db.Where("email = ? AND id <> ?", req.Email, userID).First(&existing).Error; err == nil {
			return nil, errors.New("email already in use")
		}
		user.Email = utils.SanitizeString(req.Email)
	}
	user.DisplayName = utils.SanitizeString(req.DisplayName)

	if err := s.db.Save(&user).Error; err != nil {
		return nil, errors.New("failed to update profile")
	}
	return &user, nil
}

func (s *AuthService) ForgotPassword(req ForgotPasswordRequest) error {
	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error; err != nil {
		// Do not reveal whether the account exists
		return nil
	}

	token, err := utils.GenerateRandomString(32)
	if err != nil {
		return errors.New("failed to generate reset token")
	}

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := s.db.Create(&resetToken).Error; err != nil {
		return errors.New("failed to store reset token")
	}

	return s.emailService.SendPasswordResetEmail(user.Email, token, s.baseURL)
}

func (s *AuthService) ValidateResetToken(token string) error {
	var resetToken models.PasswordResetToken
	if err := s.db.Where("token = ? AND is_used = ? AND expires_at > ?", token, false, time.Now()).
		First(&resetToken).Error; err != nil {
		return errors.New("invalid or expired reset token")
	}
	return nil
}

func (s *AuthService) ResetPassword(req ResetPasswordRequest) error {
	if !utils.IsValidPassword(req.NewPassword) {
		return errors.New("password must be at least 8 characters")
	}

	var resetToken models.PasswordResetToken
	if err := s.db.Where("token = ? AND is_used = ? AND expires_at > ?", req.Token, false, time.Now()).
		First(&resetToken).Error; err != nil {
		return errors.New("invalid or expired reset token")
	}

	var user models.User
	if err := s.db.First(&user, resetToken.UserID).Error; err != nil {
		return errors.New("user not found")
	}

	if err := user.UpdatePassword(req.NewPassword); err != nil {
		return errors.New("failed to hash password")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("password", user.Password).Error; err != nil {
		tx.Rollback()
		return errors.New("failed to update password")
	}

	resetToken.IsUsed = true
	if err := tx.Save(&resetToken).Error; err != nil {
		tx.Rollback()
		return errors.New("failed to mark reset token used")
	}

	// Revoke active sessions after a reset
	if err := tx.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Update("is_revoked", true).Error; err != nil {
		tx.Rollback()
		return errors.New("failed to revoke sessions")
	}

	return tx.Commit().Error
}

func (s *AuthService) ChangePassword(userID uint, req ChangePasswordRequest) error {
	if !utils.IsValidPassword(req.NewPassword) {
		return errors.New("password must be at least 8 characters")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return errors.New("current password is incorrect")
	}

	if err := user.UpdatePassword(req.NewPassword); err != nil {
		return errors.New("failed to hash password")
	}

	return s.db.Model(&models.User{}).Where("id = ?", user.ID).Update("password", user.Password).Error
}

func (s *AuthService) issueTokens(user *models.User) (*utils.TokenPair, error) {
	tokenPair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate tokens")
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
		IsRevoked: false,
	}
	if err := s.db.Create(&refreshToken).Error; err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	return tokenPair, nil
}
