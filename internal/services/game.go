package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/playscore/playscore-backend/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	QueryTimeout    = 30 * time.Second
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidFilter = errors.New("invalid filter parameters")
	ErrDatabaseQuery = errors.New("database query failed")
)

type GameService struct {
	db        *gorm.DB
	s3Service *S3Service
}

func NewGameService(db *gorm.DB, s3Service *S3Service) *GameService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &GameService{db: db, s3Service: s3Service}
}

type GameFilter struct {
	Genre     string `form:"genre"`
	Developer string `form:"developer"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type GameResponse struct {
	Games []models.Game `json:"games"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Pages int           `json:"pages"`
}

// ValidateAndNormalize validates and normalizes filter parameters
func (f *GameFilter) ValidateAndNormalize() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	f.Search = strings.TrimSpace(f.Search)
	f.Genre = strings.TrimSpace(f.Genre)
	f.Developer = strings.TrimSpace(f.Developer)

	if len(f.Search) > 255 {
		return fmt.Errorf("%w: search term too long", ErrInvalidFilter)
	}

	return nil
}

// GetGames retrieves approved games with filtering and pagination.
func (s *GameService) GetGames(ctx context.Context, filter GameFilter) (*GameResponse, error) {
	if err := filter.ValidateAndNormalize(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var games []models.Game
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Game{}).
		Where("status = ? AND is_active = ?", models.GameStatusApproved, true)
	query = s.applyFilters(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to count games: %v", ErrDatabaseQuery, err)
	}

	if total == 0 {
		return &GameResponse{
			Games: []models.Game{},
			Total: 0,
			Page:  filter.Page,
			Limit: filter.Limit,
			Pages: 0,
		}, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("CoverImages").
		Offset(offset).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&games).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch games: %v", ErrDatabaseQuery, err)
	}

	pages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		pages++
	}

	return &GameResponse{
		Games: games,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: pages,
	}, nil
}

// GetGameByID retrieves a single approved game by ID.
func (s *GameService) GetGameByID(ctx context.Context, id uint) (*models.Game, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: invalid game ID", ErrInvalidFilter)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var game models.Game
	if err := s.db.WithContext(ctx).
		Preload("CoverImages").
		Where("id = ? AND status = ? AND is_active = ?", id, models.GameStatusApproved, true).
		First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch game: %v", ErrDatabaseQuery, err)
	}

	return &game, nil
}

func (s *GameService) applyFilters(query *gorm.DB, filter GameFilter) *gorm.DB {
	if filter.Genre != "" {
		query = query.Where("LOWER(genre) LIKE ?", "%"+strings.ToLower(filter.Genre)+"%")
	}

	if filter.Developer != "" {
		query = query.Where("LOWER(developer) LIKE ?", "%"+strings.ToLower(filter.Developer)+"%")
	}

	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(developer) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	return query
}

func (s *GameService) GetGenres(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT genre
		FROM games
		WHERE genre IS NOT NULL AND genre != '' AND status = 'approved'
		ORDER BY genre
	`

	genres := make([]string, 0)
	if err := s.db.WithContext(ctx).Raw(query).Scan(&genres).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch genres: %v", ErrDatabaseQuery, err)
	}

	return genres, nil
}

// SubmitGame records a developer's game submission, pending admin
// review, with optional cover images uploaded to S3.
func (s *GameService) SubmitGame(ctx context.Context, userID uint, req *models.SubmitGameRequest, imageFiles []*multipart.FileHeader) (*models.Game, error) {
	if req == nil {
		return nil, errors.New("submission cannot be nil")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("game title is required")
	}

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	game := &models.Game{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Genre:         req.Genre,
		Developer:     req.Developer,
		ReleaseDate:   req.ReleaseDate,
		Status:        models.GameStatusPending,
		SubmittedByID: &userID,
		IsActive:      true,
	}

	if err := tx.Create(game).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create game submission: %v", err)
	}

	if len(imageFiles) > 0 {
		uploadResults, err := s.s3Service.UploadMultipleCoverImages(imageFiles)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to upload cover images: %v", err)
		}

		var images []models.GameImage
		for _, result := range uploadResults {
			images = append(images, models.GameImage{
				GameID:      game.ID,
				FileName:    result.FileName,
				S3Key:       result.Key,
				S3URL:       result.URL,
				ContentType: result.ContentType,
				Size:        result.Size,
			})
		}

		if err := tx.Create(&images).Error; err != nil {
			tx.Rollback()
			var keys []string
			for _, result := range uploadResults {
				keys = append(keys, result.Key)
			}
			s.s3Service.DeleteMultipleImages(keys)
			return nil, fmt.Errorf("failed to create image records: %v", err)
		}

		game.CoverImages = images
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	if err := s.db.Preload("CoverImages").First(game, game.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load created game: %v", err)
	}

	return game, nil
}

// GetDeveloperGames lists a developer's own submissions, any status.
func (s *GameService) GetDeveloperGames(ctx context.Context, userID uint) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Preload("CoverImages").
		Where("submitted_by_id = ?", userID).
		Order("created_at DESC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch submissions: %v", ErrDatabaseQuery, err)
	}
	return games, nil
}
