package moderation

import (
	"context"

	"github.com/playscore/playscore-backend/internal/models"
)

// Store is the persistence collaborator for the moderation core.
// Implementations must return ErrNotFound for missing records, eager-load
// author and game references on reads, and exclude ratings without review
// text from ReviewsByStatus.
type Store interface {
	CommentsByStatus(ctx context.Context, status Status) ([]models.Comment, error)
	ReviewsByStatus(ctx context.Context, status Status) ([]models.Rating, error)
	CommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ReviewByKey(ctx context.Context, key ReviewKey) (*models.Rating, error)
	SaveComment(ctx context.Context, comment *models.Comment) error
	SaveReview(ctx context.Context, rating *models.Rating) error
	DeleteComment(ctx context.Context, comment *models.Comment) error
	CountCommentsByStatus(ctx context.Context, status Status) (int64, error)
	CountReviewsByStatus(ctx context.Context, status Status) (int64, error)
	CountComments(ctx context.Context) (int64, error)
	CountReviews(ctx context.Context) (int64, error)
}

// Notifier is the fire-and-forget notification collaborator. The core
// logs and swallows its errors; they never fail a transition.
type Notifier interface {
	NotifyApproved(ctx context.Context, item ContentItem) error
	NotifyRejected(ctx context.Context, item ContentItem, reason string) error
}
