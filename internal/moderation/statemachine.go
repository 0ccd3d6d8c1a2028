package moderation

import (
	"context"
	"fmt"
	"strings"

	"github.com/playscore/playscore-backend/pkg/logger"
)

// DefaultRejectReason is recorded when a moderator rejects without
// giving a reason.
const DefaultRejectReason = "Rejected by moderator"

// StateMachine applies approve/reject/flag transitions uniformly to
// comments and reviews. Persistence failures abort a transition and
// propagate; notification failures are logged and swallowed.
type StateMachine struct {
	store    Store
	notifier Notifier
}

func NewStateMachine(store Store, notifier Notifier) *StateMachine {
	if store == nil {
		panic("moderation store cannot be nil")
	}
	return &StateMachine{store: store, notifier: notifier}
}

// Approve moves the item to approved, clearing any flag and its reason.
func (m *StateMachine) Approve(ctx context.Context, actor Actor, item ContentItem) error {
	if !actor.Role.CanModerate() {
		return ErrForbidden
	}

	item.setState(true, false, nil)
	if err := m.save(ctx, item); err != nil {
		return err
	}

	if m.notifier != nil {
		if err := m.notifier.NotifyApproved(ctx, item); err != nil {
			logger.WithFields(map[string]interface{}{
				"item_id": item.FeedID(),
				"error":   err.Error(),
			}).Warn("approval notification failed")
		}
	}
	return nil
}

// Reject flags the item. An empty or whitespace-only reason is replaced
// by DefaultRejectReason.
func (m *StateMachine) Reject(ctx context.Context, actor Actor, item ContentItem, reason string) error {
	if !actor.Role.CanModerate() {
		return ErrForbidden
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectReason
	}

	item.setState(false, true, &reason)
	if err := m.save(ctx, item); err != nil {
		return err
	}

	if m.notifier != nil {
		if err := m.notifier.NotifyRejected(ctx, item, reason); err != nil {
			logger.WithFields(map[string]interface{}{
				"item_id": item.FeedID(),
				"error":   err.Error(),
			}).Warn("rejection notification failed")
		}
	}
	return nil
}

// Flag is the community-initiated counterpart of Reject: any
// authenticated user may raise it, and the reason is mandatory. The
// item lands in the flagged bucket for moderator review; no
// notification is sent until a moderator decides.
func (m *StateMachine) Flag(ctx context.Context, item ContentItem, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyReason
	}

	item.setState(false, true, &reason)
	return m.save(ctx, item)
}

// Edit replaces the item's body. Only the author or a moderator may
// edit; state is untouched unless a moderator explicitly approves in
// the same call.
func (m *StateMachine) Edit(ctx context.Context, actor Actor, item ContentItem, newBody string, approve bool) error {
	if actor.ID != item.AuthorID() && !actor.Role.CanModerate() {
		return ErrForbidden
	}

	if item.Kind == KindReview {
		item.Review.Body = newBody
	} else {
		item.Comment.Body = newBody
	}

	if approve && actor.Role.CanModerate() {
		item.setState(true, false, nil)
	}
	return m.save(ctx, item)
}

// Delete removes a comment outright. A review keeps its score: only the
// review text is cleared, and the remaining score-only rating is forced
// to approved so it never re-enters the feed.
func (m *StateMachine) Delete(ctx context.Context, actor Actor, item ContentItem) error {
	if actor.ID != item.AuthorID() && !actor.Role.CanModerate() {
		return ErrForbidden
	}

	if item.Kind == KindComment {
		if err := m.store.DeleteComment(ctx, item.Comment); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	}

	item.Review.Body = ""
	item.setState(true, false, nil)
	return m.save(ctx, item)
}

func (m *StateMachine) save(ctx context.Context, item ContentItem) error {
	var err error
	if item.Kind == KindReview {
		err = m.store.SaveReview(ctx, item.Review)
	} else {
		err = m.store.SaveComment(ctx, item.Comment)
	}
	if err != nil {
		return fmt.Errorf("failed to persist transition: %w", err)
	}
	return nil
}
