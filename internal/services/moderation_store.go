package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/moderation"
	"gorm.io/gorm"
)

// ModerationStore is the gorm-backed persistence collaborator for the
// moderation core. Ratings without review text are invisible here; they
// only exist as scores.
type ModerationStore struct {
	db *gorm.DB
}

func NewModerationStore(db *gorm.DB) *ModerationStore {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &ModerationStore{db: db}
}

// statusScope maps a moderation bucket onto the two state columns.
// Pending is the absence of both flags.
func statusScope(status moderation.Status) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case moderation.StatusApproved:
			return db.Where("is_approved = ?", true)
		case moderation.StatusFlagged:
			return db.Where("is_flagged = ?", true)
		default:
			return db.Where("is_approved = ? AND is_flagged = ?", false, false)
		}
	}
}

func withReviewText(db *gorm.DB) *gorm.DB {
	return db.Where("body <> ''")
}

func (s *ModerationStore) CommentsByStatus(ctx context.Context, status moderation.Status) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Game").
		Scopes(statusScope(status)).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %v", err)
	}
	return comments, nil
}

func (s *ModerationStore) ReviewsByStatus(ctx context.Context, status moderation.Status) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Game").
		Scopes(statusScope(status), withReviewText).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %v", err)
	}
	return ratings, nil
}

func (s *ModerationStore) CommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Game").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch comment: %v", err)
	}
	return &comment, nil
}

func (s *ModerationStore) ReviewByKey(ctx context.Context, key moderation.ReviewKey) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Game").
		Where("user_id = ? AND game_id = ?", key.AuthorID, key.SubjectID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %v", err)
	}
	return &rating, nil
}

func (s *ModerationStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Save(comment).Error
}

func (s *ModerationStore) SaveReview(ctx context.Context, rating *models.Rating) error {
	// Save on a composite-key model updates all columns for that key
	return s.db.WithContext(ctx).Save(rating).Error
}

func (s *ModerationStore) DeleteComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Delete(comment).Error
}

func (s *ModerationStore) CountCommentsByStatus(ctx context.Context, status moderation.Status) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Scopes(statusScope(status)).
		Count(&count).Error
	return count, err
}

func (s *ModerationStore) CountReviewsByStatus(ctx context.Context, status moderation.Status) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Scopes(statusScope(status), withReviewText).
		Count(&count).Error
	return count, err
}

func (s *ModerationStore) CountComments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}

func (s *ModerationStore) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Scopes(withReviewText).
		Count(&count).Error
	return count, err
}
