package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/playscore/playscore-backend/internal/moderation"
)

// ModerationNotifier adapts EmailService to the moderation core's
// Notifier interface. The state machine treats its errors as
// best-effort; they are returned here only so they can be logged there.
type ModerationNotifier struct {
	emailService *EmailService
}

func NewModerationNotifier(emailService *EmailService) *ModerationNotifier {
	return &ModerationNotifier{emailService: emailService}
}

func (n *ModerationNotifier) NotifyApproved(ctx context.Context, item moderation.ContentItem) error {
	author := item.Author()
	if author == nil || author.Email == "" {
		return errors.New("author email not loaded")
	}
	return n.emailService.SendContentApprovedEmail(author.Email, n.gameTitle(item), excerpt(item.Body()))
}

func (n *ModerationNotifier) NotifyRejected(ctx context.Context, item moderation.ContentItem, reason string) error {
	author := item.Author()
	if author == nil || author.Email == "" {
		return errors.New("author email not loaded")
	}
	return n.emailService.SendContentRejectedEmail(author.Email, n.gameTitle(item), excerpt(item.Body()), reason)
}

func (n *ModerationNotifier) gameTitle(item moderation.ContentItem) string {
	if item.Kind == moderation.KindReview {
		return item.Review.Game.Title
	}
	return item.Comment.Game.Title
}

func excerpt(body string) string {
	const maxExcerpt = 120
	runes := []rune(body)
	if len(runes) <= maxExcerpt {
		return body
	}
	return fmt.Sprintf("%s…", string(runes[:maxExcerpt]))
}
