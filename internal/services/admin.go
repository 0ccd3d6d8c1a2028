package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/playscore/playscore-backend/internal/config"
	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminService struct {
	db             *gorm.DB
	cfg            *config.Config
	catalogService *CatalogService
	emailService   *EmailService
	queue          *moderation.Queue
}

func NewAdminService(db *gorm.DB, cfg *config.Config, catalogService *CatalogService, emailService *EmailService, queue *moderation.Queue) *AdminService {
	return &AdminService{
		db:             db,
		cfg:            cfg,
		catalogService: catalogService,
		emailService:   emailService,
		queue:          queue,
	}
}

type DashboardStats struct {
	Users        int64              `json:"users"`
	Games        int64              `json:"games"`
	PendingGames int64              `json:"pending_games"`
	Moderation   *moderation.Counts `json:"moderation"`
}

func (s *AdminService) GetDashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.Users).Error; err != nil {
		return nil, errors.New("failed to count users")
	}
	if err := s.db.Model(&models.Game{}).Where("status = ? AND is_active = ?", models.GameStatusApproved, true).Count(&stats.Games).Error; err != nil {
		return nil, errors.New("failed to count games")
	}
	if err := s.db.Model(&models.Game{}).Where("status = ?", models.GameStatusPending).Count(&stats.PendingGames).Error; err != nil {
		return nil, errors.New("failed to count pending games")
	}

	counts, err := s.queue.Counts(ctx)
	if err != nil {
		return nil, err
	}
	stats.Moderation = counts

	return stats, nil
}

// GetPendingSubmissions lists developer game submissions awaiting review.
func (s *AdminService) GetPendingSubmissions(ctx context.Context, page, limit int) ([]models.Game, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Game{}).Where("status = ?", models.GameStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.New("failed to count submissions")
	}

	var games []models.Game
	offset := (page - 1) * limit
	err := query.
		Preload("CoverImages").
		Preload("SubmittedBy").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, 0, errors.New("failed to fetch submissions")
	}

	return games, total, nil
}

// ReviewSubmission approves or rejects a developer game submission and
// emails the submitter. The email is best-effort.
func (s *AdminService) ReviewSubmission(ctx context.Context, gameID uint, action, reason string) (*models.Game, error) {
	var game models.Game
	if err := s.db.Preload("SubmittedBy").First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, errors.New("failed to fetch game")
	}

	if game.Status != models.GameStatusPending {
		return nil, errors.New("game is not pending review")
	}

	switch action {
	case "approve":
		game.Status = models.GameStatusApproved
	case "reject":
		game.Status = models.GameStatusRejected
		if reason == "" {
			reason = "Rejected by admin"
		}
	default:
		return nil, errors.New("invalid action, use 'approve' or 'reject'")
	}

	if err := s.db.WithContext(ctx).Save(&game).Error; err != nil {
		return nil, errors.New("failed to update game status")
	}

	if game.SubmittedBy != nil && game.SubmittedBy.Email != "" {
		var mailErr error
		if action == "approve" {
			mailErr = s.emailService.SendGameApprovedEmail(game.SubmittedBy.Email, game.Title)
		} else {
			mailErr = s.emailService.SendGameRejectedEmail(game.SubmittedBy.Email, game.Title, reason)
		}
		if mailErr != nil {
			logger.WithFields(map[string]interface{}{
				"game_id": game.ID,
				"error":   mailErr.Error(),
			}).Warn("submission review notification failed")
		}
	}

	return &game, nil
}

// ImportGame pulls a game from the third-party catalog into the local
// library. Imported games are approved immediately.
func (s *AdminService) ImportGame(ctx context.Context, externalID string) (*models.Game, error) {
	var existing models.Game
	if err := s.db.Where("external_id = ?", externalID).First(&existing).Error; err == nil {
		return nil, errors.New("game already imported")
	}

	catalogGame, err := s.catalogService.GetGame(externalID)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %v", err)
	}

	game := models.Game{
		Title:       catalogGame.Title,
		Description: catalogGame.Description,
		Genre:       catalogGame.Genre,
		Developer:   catalogGame.Developer,
		ReleaseDate: catalogGame.ReleaseDate,
		ExternalID:  catalogGame.ExternalID,
		Status:      models.GameStatusApproved,
		IsActive:    true,
	}

	if err := s.db.WithContext(ctx).Create(&game).Error; err != nil {
		return nil, errors.New("failed to store imported game")
	}

	return &game, nil
}

// SearchCatalog proxies a search against the third-party catalog.
func (s *AdminService) SearchCatalog(query string, page int) ([]CatalogGame, error) {
	return s.catalogService.SearchGames(query, page)
}

type UserListResponse struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (*UserListResponse, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, errors.New("failed to count users")
	}

	var users []models.User
	offset := (page - 1) * limit
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, errors.New("failed to fetch users")
	}

	return &UserListResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

// UpdateUserRole assigns one of the closed role set. This is the only
// path to the moderator and admin roles.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	switch moderation.Role(role) {
	case moderation.RoleUser, moderation.RoleDeveloper, moderation.RoleModerator, moderation.RoleAdmin:
	default:
		return nil, errors.New("invalid role")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	user.Role = role
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, errors.New("failed to update role")
	}

	return &user, nil
}

func (s *AdminService) SetUserActive(ctx context.Context, userID uint, active bool) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("is_active", active)
	if result.Error != nil {
		return errors.New("failed to update user")
	}
	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return nil
}
