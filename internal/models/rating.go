package models

import (
	"time"
)

// Rating is keyed by (user, game) — one rating per user per game,
// submitting again updates the existing row. The optional Body is the
// written review; a rating with no text never enters the moderation feed.
type Rating struct {
	UserID     uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	GameID     uint      `json:"game_id" gorm:"primaryKey;autoIncrement:false"`
	Score      int       `json:"score" gorm:"check:score >= 1 AND score <= 5"`
	Body       string    `json:"body"`
	IsApproved bool      `json:"is_approved" gorm:"default:false"`
	IsFlagged  bool      `json:"is_flagged" gorm:"default:false"`
	FlagReason *string   `json:"flag_reason"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty"`
	Game Game `json:"game,omitempty"`
}

// HasReviewText reports whether this rating carries a written review.
func (r *Rating) HasReviewText() bool {
	return r.Body != ""
}
