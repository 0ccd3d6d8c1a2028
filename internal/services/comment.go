package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/internal/utils"
	"gorm.io/gorm"
)

type CommentService struct {
	db      *gorm.DB
	queue   *moderation.Queue
	machine *moderation.StateMachine
}

func NewCommentService(db *gorm.DB, queue *moderation.Queue, machine *moderation.StateMachine) *CommentService {
	return &CommentService{db: db, queue: queue, machine: machine}
}

type CreateCommentRequest struct {
	GameID   uint   `json:"game_id" binding:"required"`
	ParentID *uint  `json:"parent_id"`
	Body     string `json:"body" binding:"required"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (s *CommentService) CreateComment(ctx context.Context, actor moderation.Actor, req CreateCommentRequest) (*models.Comment, error) {
	if !utils.IsValidCommentBody(req.Body) {
		return nil, errors.New("comment body must be 1-1000 characters")
	}

	var game models.Game
	if err := s.db.Where("id = ? AND status = ? AND is_active = ?", req.GameID, models.GameStatusApproved, true).
		First(&game).Error; err != nil {
		return nil, errors.New("game not found")
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := s.db.Where("id = ? AND game_id = ?", *req.ParentID, req.GameID).First(&parent).Error; err != nil {
			return nil, errors.New("parent comment not found")
		}
	}

	comment := models.Comment{
		UserID:   actor.ID,
		GameID:   req.GameID,
		ParentID: req.ParentID,
		Body:     utils.SanitizeString(req.Body),
		// Elevated authors skip the pending state entirely
		IsApproved: actor.Role.AutoApproved(),
		IsFlagged:  false,
	}

	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, errors.New("failed to create comment")
	}

	s.db.Preload("User").Preload("Game").First(&comment, comment.ID)
	return &comment, nil
}

// GetGameComments returns approved top-level comments with their
// approved replies.
func (s *CommentService) GetGameComments(ctx context.Context, gameID uint, page, limit int) ([]models.Comment, int64, error) {
	var game models.Game
	if err := s.db.Where("id = ? AND is_active = ?", gameID, true).First(&game).Error; err != nil {
		return nil, 0, errors.New("game not found")
	}

	query := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("game_id = ? AND parent_id IS NULL AND is_approved = ?", gameID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.New("failed to count comments")
	}

	var comments []models.Comment
	offset := (page - 1) * limit
	err := query.
		Preload("User").
		Preload("Replies", "is_approved = ?", true).
		Preload("Replies.User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, errors.New("failed to fetch comments")
	}

	return comments, total, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actor moderation.Actor, commentID uint, req UpdateCommentRequest) (*models.Comment, error) {
	if !utils.IsValidCommentBody(req.Body) {
		return nil, errors.New("comment body must be 1-1000 characters")
	}

	item, err := s.queue.Resolve(ctx, itemID(commentID))
	if err != nil {
		return nil, err
	}

	if err := s.machine.Edit(ctx, actor, item, utils.SanitizeString(req.Body), false); err != nil {
		return nil, err
	}
	return item.Comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actor moderation.Actor, commentID uint) error {
	item, err := s.queue.Resolve(ctx, itemID(commentID))
	if err != nil {
		return err
	}
	return s.machine.Delete(ctx, actor, item)
}

// FlagComment raises a community flag. Authentication is the only
// requirement; the reason is mandatory.
func (s *CommentService) FlagComment(ctx context.Context, commentID uint, reason string) error {
	item, err := s.queue.Resolve(ctx, itemID(commentID))
	if err != nil {
		return err
	}
	return s.machine.Flag(ctx, item, reason)
}

func itemID(commentID uint) string {
	return strconv.FormatUint(uint64(commentID), 10)
}
