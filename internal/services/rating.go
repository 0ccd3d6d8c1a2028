package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/internal/utils"
	"gorm.io/gorm"
)

type RatingService struct {
	db      *gorm.DB
	queue   *moderation.Queue
	machine *moderation.StateMachine
}

func NewRatingService(db *gorm.DB, queue *moderation.Queue, machine *moderation.StateMachine) *RatingService {
	return &RatingService{db: db, queue: queue, machine: machine}
}

type SubmitRatingRequest struct {
	Score int    `json:"score" binding:"required"`
	Body  string `json:"body"`
}

type GameAverage struct {
	GameID  uint    `json:"game_id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// SubmitRating creates or updates the caller's rating for a game. One
// rating exists per (user, game); submitting again overwrites score and
// review text. A fresh or edited review re-enters the pending state
// unless the author holds an elevated role. A score without text never
// needs moderation and is approved on the spot.
func (s *RatingService) SubmitRating(ctx context.Context, actor moderation.Actor, gameID uint, req SubmitRatingRequest) (*models.Rating, error) {
	if !utils.IsValidScore(req.Score) {
		return nil, errors.New("score must be between 1 and 5")
	}

	var game models.Game
	if err := s.db.Where("id = ? AND status = ? AND is_active = ?", gameID, models.GameStatusApproved, true).
		First(&game).Error; err != nil {
		return nil, errors.New("game not found")
	}

	body := utils.SanitizeString(req.Body)
	if utf8.RuneCountInString(body) > utils.MaxCommentLength {
		return nil, errors.New("review text must be at most 1000 characters")
	}
	approved := body == "" || actor.Role.AutoApproved()

	var rating models.Rating
	err := s.db.Where("user_id = ? AND game_id = ?", actor.ID, gameID).First(&rating).Error
	if err == nil {
		// Rating exists — update it
		rating.Score = req.Score
		rating.Body = body
		rating.IsApproved = approved
		rating.IsFlagged = false
		rating.FlagReason = nil

		if err := s.db.WithContext(ctx).Save(&rating).Error; err != nil {
			return nil, errors.New("failed to update existing rating")
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		rating = models.Rating{
			UserID:     actor.ID,
			GameID:     gameID,
			Score:      req.Score,
			Body:       body,
			IsApproved: approved,
			IsFlagged:  false,
		}

		if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
			return nil, errors.New("failed to create rating")
		}
	} else {
		return nil, errors.New("failed to look up rating")
	}

	s.db.Preload("User").Preload("Game").
		Where("user_id = ? AND game_id = ?", actor.ID, gameID).
		First(&rating)
	return &rating, nil
}

// GetGameReviews returns the approved written reviews for a game.
// Score-only ratings contribute to the average but have nothing to show.
func (s *RatingService) GetGameReviews(ctx context.Context, gameID uint, page, limit int) ([]models.Rating, int64, error) {
	var game models.Game
	if err := s.db.Where("id = ? AND is_active = ?", gameID, true).First(&game).Error; err != nil {
		return nil, 0, errors.New("game not found")
	}

	query := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("game_id = ? AND is_approved = ? AND body <> ''", gameID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.New("failed to count reviews")
	}

	var ratings []models.Rating
	offset := (page - 1) * limit
	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, errors.New("failed to fetch reviews")
	}

	return ratings, total, nil
}

// GetGameAverage aggregates all scores for a game, written or not.
func (s *RatingService) GetGameAverage(ctx context.Context, gameID uint) (*GameAverage, error) {
	avg := &GameAverage{GameID: gameID}

	row := s.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("game_id = ?", gameID).
		Row()
	if err := row.Scan(&avg.Average, &avg.Count); err != nil {
		return nil, errors.New("failed to aggregate scores")
	}

	return avg, nil
}

// DeleteReviewText clears the caller's written review for a game. The
// score survives; only the text is removed.
func (s *RatingService) DeleteReviewText(ctx context.Context, actor moderation.Actor, gameID uint) error {
	key := moderation.ReviewKey{AuthorID: actor.ID, SubjectID: gameID}
	item, err := s.queue.Resolve(ctx, key.String())
	if err != nil {
		return err
	}
	return s.machine.Delete(ctx, actor, item)
}

// FlagReview raises a community flag on another user's written review.
func (s *RatingService) FlagReview(ctx context.Context, authorID, gameID uint, reason string) error {
	key := moderation.ReviewKey{AuthorID: authorID, SubjectID: gameID}
	item, err := s.queue.Resolve(ctx, key.String())
	if err != nil {
		return err
	}
	if !item.Review.HasReviewText() {
		return moderation.ErrNotFound
	}
	return s.machine.Flag(ctx, item, reason)
}
