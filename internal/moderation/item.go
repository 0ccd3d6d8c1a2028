package moderation

import (
	"strconv"
	"time"

	"github.com/playscore/playscore-backend/internal/models"
)

// Status buckets content by its moderation state. Pending is the
// implicit state of content that is neither approved nor flagged.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusFlagged  Status = "flagged"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusFlagged:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

type Kind string

const (
	KindComment Kind = "comment"
	KindReview  Kind = "review"
)

// ContentItem is the tagged union the queue and state machine operate
// on. Exactly one of Comment or Review is set, matching Kind.
type ContentItem struct {
	Kind    Kind
	Comment *models.Comment
	Review  *models.Rating
}

func NewCommentItem(c *models.Comment) ContentItem {
	return ContentItem{Kind: KindComment, Comment: c}
}

func NewReviewItem(r *models.Rating) ContentItem {
	return ContentItem{Kind: KindReview, Review: r}
}

// FeedID is the identifier the item carries in the merged feed: the
// native comment id rendered as decimal, or the review's composite key.
func (it ContentItem) FeedID() string {
	if it.Kind == KindReview {
		return ReviewKey{AuthorID: it.Review.UserID, SubjectID: it.Review.GameID}.String()
	}
	return strconv.FormatUint(uint64(it.Comment.ID), 10)
}

func (it ContentItem) AuthorID() uint {
	if it.Kind == KindReview {
		return it.Review.UserID
	}
	return it.Comment.UserID
}

func (it ContentItem) SubjectID() uint {
	if it.Kind == KindReview {
		return it.Review.GameID
	}
	return it.Comment.GameID
}

func (it ContentItem) Body() string {
	if it.Kind == KindReview {
		return it.Review.Body
	}
	return it.Comment.Body
}

func (it ContentItem) CreatedAt() time.Time {
	if it.Kind == KindReview {
		return it.Review.CreatedAt
	}
	return it.Comment.CreatedAt
}

func (it ContentItem) IsApproved() bool {
	if it.Kind == KindReview {
		return it.Review.IsApproved
	}
	return it.Comment.IsApproved
}

func (it ContentItem) IsFlagged() bool {
	if it.Kind == KindReview {
		return it.Review.IsFlagged
	}
	return it.Comment.IsFlagged
}

func (it ContentItem) FlagReason() *string {
	if it.Kind == KindReview {
		return it.Review.FlagReason
	}
	return it.Comment.FlagReason
}

func (it ContentItem) Author() *models.User {
	if it.Kind == KindReview {
		return &it.Review.User
	}
	return &it.Comment.User
}

// Status derives the bucket from the two state flags.
func (it ContentItem) Status() Status {
	switch {
	case it.IsFlagged():
		return StatusFlagged
	case it.IsApproved():
		return StatusApproved
	default:
		return StatusPending
	}
}

// setState applies a transition atomically to whichever record the
// union holds. Flags and reason always change together.
func (it ContentItem) setState(approved, flagged bool, reason *string) {
	if it.Kind == KindReview {
		it.Review.IsApproved = approved
		it.Review.IsFlagged = flagged
		it.Review.FlagReason = reason
		return
	}
	it.Comment.IsApproved = approved
	it.Comment.IsFlagged = flagged
	it.Comment.FlagReason = reason
}

// FeedEntry is the JSON shape of one item in the merged feed.
type FeedEntry struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	GameID     uint      `json:"game_id"`
	GameTitle  string    `json:"game_title,omitempty"`
	Body       string    `json:"body"`
	Score      int       `json:"score,omitempty"`
	Status     Status    `json:"status"`
	FlagReason *string   `json:"flag_reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Entry renders the item for the feed.
func (it ContentItem) Entry() FeedEntry {
	entry := FeedEntry{
		ID:         it.FeedID(),
		Kind:       it.Kind,
		AuthorID:   it.AuthorID(),
		GameID:     it.SubjectID(),
		Body:       it.Body(),
		Status:     it.Status(),
		FlagReason: it.FlagReason(),
		CreatedAt:  it.CreatedAt(),
	}
	if it.Kind == KindReview {
		entry.Score = it.Review.Score
		entry.AuthorName = it.Review.User.Username
		entry.GameTitle = it.Review.Game.Title
	} else {
		entry.AuthorName = it.Comment.User.Username
		entry.GameTitle = it.Comment.Game.Title
	}
	return entry
}
