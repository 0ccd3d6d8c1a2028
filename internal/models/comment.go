package models

import (
	"time"
)

type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	GameID     uint      `json:"game_id" gorm:"not null"`
	ParentID   *uint     `json:"parent_id"` // set for threaded replies
	Body       string    `json:"body" gorm:"size:1000;not null"`
	IsApproved bool      `json:"is_approved" gorm:"default:false"`
	IsFlagged  bool      `json:"is_flagged" gorm:"default:false"`
	FlagReason *string   `json:"flag_reason"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User    User      `json:"user,omitempty"`
	Game    Game      `json:"game,omitempty"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}
