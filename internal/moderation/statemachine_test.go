package moderation_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/playscore/playscore-backend/internal/mocks"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var (
	moderator = moderation.Actor{ID: 100, Role: moderation.RoleModerator}
	admin     = moderation.Actor{ID: 101, Role: moderation.RoleAdmin}
	regular   = moderation.Actor{ID: 5, Role: moderation.RoleUser}
)

func assertExclusive(t *testing.T, item moderation.ContentItem) {
	t.Helper()
	if item.IsApproved() && item.IsFlagged() {
		t.Fatal("item is both approved and flagged")
	}
}

func TestApproveComment(t *testing.T) {
	store := mocks.NewMockModerationStore()
	notifier := mocks.NewMockNotifier()
	store.AddComment(pendingComment(1, 5, 9, "pending comment", time.Hour))

	machine := moderation.NewStateMachine(store, notifier)
	item := moderation.NewCommentItem(store.Comments[1])

	if err := machine.Approve(context.Background(), moderator, item); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	saved := store.Comments[1]
	if !saved.IsApproved || saved.IsFlagged {
		t.Errorf("expected approved and unflagged, got approved=%v flagged=%v", saved.IsApproved, saved.IsFlagged)
	}
	if saved.FlagReason != nil {
		t.Errorf("expected flag reason cleared, got %q", *saved.FlagReason)
	}
	if len(notifier.ApprovedCalls) != 1 || notifier.ApprovedCalls[0] != "1" {
		t.Errorf("expected one approval notification for item 1, got %v", notifier.ApprovedCalls)
	}
	assertExclusive(t, item)
}

func TestRejectReviewWithDefaultReason(t *testing.T) {
	store := mocks.NewMockModerationStore()
	notifier := mocks.NewMockNotifier()
	store.AddReview(pendingReview(42, 17, 2, "bad review", time.Hour))

	machine := moderation.NewStateMachine(store, notifier)
	key := moderation.ReviewKey{AuthorID: 42, SubjectID: 17}
	item := moderation.NewReviewItem(store.Reviews[key])

	if err := machine.Reject(context.Background(), admin, item, "   "); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}

	saved := store.Reviews[key]
	if saved.IsApproved || !saved.IsFlagged {
		t.Errorf("expected flagged and unapproved, got approved=%v flagged=%v", saved.IsApproved, saved.IsFlagged)
	}
	if saved.FlagReason == nil || *saved.FlagReason != moderation.DefaultRejectReason {
		t.Errorf("expected default reason substituted, got %v", saved.FlagReason)
	}
	if len(notifier.RejectedCalls) != 1 || notifier.Reasons[0] != moderation.DefaultRejectReason {
		t.Errorf("expected rejection notified with the default reason, got %v", notifier.Reasons)
	}
	assertExclusive(t, item)
}

func TestApproveIdempotent(t *testing.T) {
	store := mocks.NewMockModerationStore()
	comment := pendingComment(1, 5, 9, "comment", time.Hour)
	comment.IsApproved = true
	store.AddComment(comment)

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewCommentItem(comment)

	if err := machine.Approve(context.Background(), moderator, item); err != nil {
		t.Fatalf("second Approve returned error: %v", err)
	}
	if !comment.IsApproved || comment.IsFlagged {
		t.Error("re-approving an approved item changed its state")
	}
}

func TestFlagClearsApproval(t *testing.T) {
	store := mocks.NewMockModerationStore()
	comment := pendingComment(3, 5, 9, "previously fine", time.Hour)
	comment.IsApproved = true
	store.AddComment(comment)

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewCommentItem(comment)

	if err := machine.Flag(context.Background(), item, "offensive"); err != nil {
		t.Fatalf("Flag returned error: %v", err)
	}
	if comment.IsApproved {
		t.Error("flagging must pull the item out of the approved bucket")
	}
	if !comment.IsFlagged || comment.FlagReason == nil || *comment.FlagReason != "offensive" {
		t.Errorf("expected flagged with reason, got flagged=%v reason=%v", comment.IsFlagged, comment.FlagReason)
	}
	if item.Status() != moderation.StatusFlagged {
		t.Errorf("expected flagged status, got %s", item.Status())
	}
	assertExclusive(t, item)
}

func TestFlagRequiresReason(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(1, 5, 9, "comment", time.Hour))

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewCommentItem(store.Comments[1])

	for _, reason := range []string{"", "   ", "\t\n"} {
		if err := machine.Flag(context.Background(), item, reason); !errors.Is(err, moderation.ErrEmptyReason) {
			t.Errorf("Flag(%q): expected ErrEmptyReason, got %v", reason, err)
		}
	}
	if store.SaveCommentCalls != 0 {
		t.Error("rejected flag attempts must not persist anything")
	}
}

func TestModerationRequiresModerator(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(1, 5, 9, "comment", time.Hour))

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewCommentItem(store.Comments[1])

	if err := machine.Approve(context.Background(), regular, item); !errors.Is(err, moderation.ErrForbidden) {
		t.Errorf("expected ErrForbidden on approve, got %v", err)
	}
	if err := machine.Reject(context.Background(), regular, item, "nope"); !errors.Is(err, moderation.ErrForbidden) {
		t.Errorf("expected ErrForbidden on reject, got %v", err)
	}
	if store.SaveCommentCalls != 0 {
		t.Error("forbidden transitions must not persist anything")
	}
}

func TestPersistenceFailurePropagates(t *testing.T) {
	store := mocks.NewMockModerationStore()
	comment := pendingComment(1, 5, 9, "comment", time.Hour)
	store.AddComment(comment)
	store.SaveError = errors.New("deadlock detected")

	notifier := mocks.NewMockNotifier()
	machine := moderation.NewStateMachine(store, notifier)
	item := moderation.NewCommentItem(comment)

	if err := machine.Approve(context.Background(), moderator, item); err == nil {
		t.Fatal("expected persistence failure to propagate")
	}
	if len(notifier.ApprovedCalls) != 0 {
		t.Error("failed transitions must not notify")
	}
}

func TestNotificationFailureSwallowed(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(1, 5, 9, "comment", time.Hour))

	notifier := mocks.NewMockNotifier()
	notifier.NotifyError = errors.New("smtp timeout")
	machine := moderation.NewStateMachine(store, notifier)
	item := moderation.NewCommentItem(store.Comments[1])

	if err := machine.Approve(context.Background(), moderator, item); err != nil {
		t.Fatalf("notification failure must not fail the transition, got %v", err)
	}
	if !store.Comments[1].IsApproved {
		t.Error("state change must survive a notification failure")
	}
}

func TestNilNotifier(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(1, 5, 9, "comment", time.Hour))

	machine := moderation.NewStateMachine(store, nil)
	item := moderation.NewCommentItem(store.Comments[1])

	if err := machine.Approve(context.Background(), moderator, item); err != nil {
		t.Fatalf("Approve without a notifier returned error: %v", err)
	}
}

func TestEditPermissions(t *testing.T) {
	store := mocks.NewMockModerationStore()
	comment := pendingComment(1, 5, 9, "original", time.Hour)
	store.AddComment(comment)

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewCommentItem(comment)

	author := moderation.Actor{ID: 5, Role: moderation.RoleUser}
	if err := machine.Edit(context.Background(), author, item, "edited by author", false); err != nil {
		t.Fatalf("author edit returned error: %v", err)
	}
	if comment.Body != "edited by author" {
		t.Errorf("expected body replaced, got %q", comment.Body)
	}
	if comment.IsApproved {
		t.Error("author edit must not approve")
	}

	stranger := moderation.Actor{ID: 99, Role: moderation.RoleUser}
	if err := machine.Edit(context.Background(), stranger, item, "hijacked", false); !errors.Is(err, moderation.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author edit, got %v", err)
	}

	if err := machine.Edit(context.Background(), moderator, item, "cleaned up", true); err != nil {
		t.Fatalf("moderator edit returned error: %v", err)
	}
	if !comment.IsApproved {
		t.Error("moderator edit with approve must approve the item")
	}
}

func TestDeleteComment(t *testing.T) {
	store := mocks.NewMockModerationStore()
	comment := pendingComment(7, 5, 9, "to delete", time.Hour)
	store.AddComment(comment)

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewCommentItem(comment)

	stranger := moderation.Actor{ID: 99, Role: moderation.RoleUser}
	if err := machine.Delete(context.Background(), stranger, item); !errors.Is(err, moderation.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author delete, got %v", err)
	}

	author := moderation.Actor{ID: 5, Role: moderation.RoleUser}
	if err := machine.Delete(context.Background(), author, item); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := store.Comments[7]; ok {
		t.Error("expected comment removed from the store")
	}
	if len(store.DeletedComments) != 1 || store.DeletedComments[0] != 7 {
		t.Errorf("expected delete recorded for comment 7, got %v", store.DeletedComments)
	}
}

func TestDeleteReviewKeepsScore(t *testing.T) {
	store := mocks.NewMockModerationStore()
	reason := "flagged earlier"
	review := pendingReview(42, 17, 4, "the review text", time.Hour)
	review.IsFlagged = true
	review.FlagReason = &reason
	store.AddReview(review)

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewReviewItem(review)

	author := moderation.Actor{ID: 42, Role: moderation.RoleUser}
	if err := machine.Delete(context.Background(), author, item); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	key := moderation.ReviewKey{AuthorID: 42, SubjectID: 17}
	saved := store.Reviews[key]
	if saved == nil {
		t.Fatal("rating must survive review deletion")
	}
	if saved.Body != "" {
		t.Errorf("expected review text cleared, got %q", saved.Body)
	}
	if saved.Score != 4 {
		t.Errorf("expected score preserved, got %d", saved.Score)
	}
	if !saved.IsApproved || saved.IsFlagged || saved.FlagReason != nil {
		t.Errorf("expected score-only rating forced approved, got approved=%v flagged=%v reason=%v",
			saved.IsApproved, saved.IsFlagged, saved.FlagReason)
	}
}

func TestTransitionCycleKeepsStatesExclusive(t *testing.T) {
	store := mocks.NewMockModerationStore()
	comment := pendingComment(1, 5, 9, "contested", time.Hour)
	store.AddComment(comment)

	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	item := moderation.NewCommentItem(comment)
	ctx := context.Background()

	if err := machine.Approve(ctx, moderator, item); err != nil {
		t.Fatal(err)
	}
	assertExclusive(t, item)
	if err := machine.Flag(ctx, item, "second look"); err != nil {
		t.Fatal(err)
	}
	assertExclusive(t, item)
	if err := machine.Reject(ctx, admin, item, "confirmed"); err != nil {
		t.Fatal(err)
	}
	assertExclusive(t, item)
	if err := machine.Approve(ctx, admin, item); err != nil {
		t.Fatal(err)
	}
	assertExclusive(t, item)
	if item.Status() != moderation.StatusApproved {
		t.Errorf("expected approved after the cycle, got %s", item.Status())
	}
	if item.FlagReason() != nil {
		t.Error("expected flag reason cleared after final approval")
	}
}
