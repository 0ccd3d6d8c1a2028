package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission lifecycle for developer-submitted games. Games imported
// from the external catalog are created as approved.
const (
	GameStatusPending  = "pending"
	GameStatusApproved = "approved"
	GameStatusRejected = "rejected"
)

type Game struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Title         string      `json:"title" gorm:"not null"`
	Description   string      `json:"description"`
	Genre         string      `json:"genre"`
	Developer     string      `json:"developer"`
	ReleaseDate   string      `json:"release_date"`
	ExternalID    string      `json:"external_id" gorm:"uniqueIndex;default:null"`
	Status        string      `json:"status" gorm:"default:pending"`
	SubmittedByID *uint       `json:"submitted_by_id"`
	IsActive      bool        `json:"is_active" gorm:"default:true"`
	CoverImages   []GameImage `json:"cover_images" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Relations
	SubmittedBy *User    `json:"submitted_by,omitempty" gorm:"foreignKey:SubmittedByID"`
	Ratings     []Rating `json:"ratings,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
}

type GameImage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GameID      uint      `gorm:"not null;index" json:"game_id"`
	FileName    string    `gorm:"not null" json:"file_name"`
	S3Key       string    `gorm:"not null;unique" json:"s3_key"`
	S3URL       string    `gorm:"not null" json:"s3_url"`
	ContentType string    `gorm:"not null" json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *GameImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Request structs for API
type SubmitGameRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Developer   string `json:"developer"`
	ReleaseDate string `json:"release_date"`
}
