package moderation_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/playscore/playscore-backend/internal/mocks"
	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/moderation"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func pendingComment(id, userID, gameID uint, body string, age time.Duration) *models.Comment {
	return &models.Comment{
		ID:        id,
		UserID:    userID,
		GameID:    gameID,
		Body:      body,
		CreatedAt: baseTime.Add(-age),
	}
}

func pendingReview(userID, gameID uint, score int, body string, age time.Duration) *models.Rating {
	return &models.Rating{
		UserID:    userID,
		GameID:    gameID,
		Score:     score,
		Body:      body,
		CreatedAt: baseTime.Add(-age),
	}
}

func TestListByStatusMergesBothKinds(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(1, 5, 9, "older comment", 2*time.Hour))
	store.AddReview(pendingReview(7, 9, 4, "newer review", time.Hour))

	queue := moderation.NewQueue(store)
	page, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 1, 20)
	if err != nil {
		t.Fatalf("ListByStatus returned error: %v", err)
	}

	if page.Total != 2 {
		t.Fatalf("expected total 2, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	// Newest first: the review is an hour younger than the comment.
	if page.Items[0].ID != "review_7_9" {
		t.Errorf("expected review first, got %s", page.Items[0].ID)
	}
	if page.Items[0].Kind != moderation.KindReview {
		t.Errorf("expected review kind, got %s", page.Items[0].Kind)
	}
	if page.Items[1].ID != "1" {
		t.Errorf("expected comment second, got %s", page.Items[1].ID)
	}
}

func TestListByStatusPagination(t *testing.T) {
	store := mocks.NewMockModerationStore()
	for i := uint(1); i <= 5; i++ {
		store.AddComment(pendingComment(i, i, 1, "comment", time.Duration(i)*time.Minute))
	}
	for i := uint(1); i <= 4; i++ {
		store.AddReview(pendingReview(i, 2, 3, "review", time.Duration(i)*time.Minute+30*time.Second))
	}

	queue := moderation.NewQueue(store)
	first, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 1, 4)
	if err != nil {
		t.Fatalf("page 1 returned error: %v", err)
	}
	if first.Total != 9 || first.Pages != 3 {
		t.Errorf("expected total 9 over 3 pages, got total %d pages %d", first.Total, first.Pages)
	}
	if len(first.Items) != 4 {
		t.Errorf("expected 4 items on page 1, got %d", len(first.Items))
	}

	last, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 3, 4)
	if err != nil {
		t.Fatalf("page 3 returned error: %v", err)
	}
	if len(last.Items) != 1 {
		t.Errorf("expected 1 item on the last page, got %d", len(last.Items))
	}

	// Interleaved ordering across kinds: comments and reviews alternate
	// because each review sits 30 seconds between two comments.
	if first.Items[0].Kind != moderation.KindComment || first.Items[1].Kind != moderation.KindReview {
		t.Errorf("expected interleaved kinds, got %s then %s", first.Items[0].Kind, first.Items[1].Kind)
	}

	beyond, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 10, 4)
	if err != nil {
		t.Fatalf("page beyond the end returned error: %v", err)
	}
	if len(beyond.Items) != 0 {
		t.Errorf("expected empty page beyond the end, got %d items", len(beyond.Items))
	}
	if beyond.Total != 9 {
		t.Errorf("expected totals preserved on empty page, got %d", beyond.Total)
	}
}

func TestListByStatusHugePageNumbers(t *testing.T) {
	store := mocks.NewMockModerationStore()
	for i := uint(1); i <= 3; i++ {
		store.AddComment(pendingComment(i, i, 1, "comment", time.Duration(i)*time.Minute))
	}

	queue := moderation.NewQueue(store)

	// Page numbers large enough to wrap (page-1)*limit behave like any
	// other page past the end of the feed.
	for _, page := range []int{(1 << 62) + 1, math.MaxInt, math.MaxInt / 6} {
		result, err := queue.ListByStatus(context.Background(), moderation.StatusPending, page, 6)
		if err != nil {
			t.Fatalf("page %d returned error: %v", page, err)
		}
		if len(result.Items) != 0 {
			t.Errorf("page %d: expected empty page, got %d items", page, len(result.Items))
		}
		if result.Total != 3 {
			t.Errorf("page %d: expected totals preserved, got %d", page, result.Total)
		}
	}

	result, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 2, math.MaxInt)
	if err != nil {
		t.Fatalf("huge limit returned error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("expected empty page for page 2 with a huge limit, got %d items", len(result.Items))
	}
}

func TestListByStatusValidation(t *testing.T) {
	queue := moderation.NewQueue(mocks.NewMockModerationStore())

	if _, err := queue.ListByStatus(context.Background(), moderation.Status("deleted"), 1, 10); !errors.Is(err, moderation.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 0, 10); !errors.Is(err, moderation.ErrInvalidPage) {
		t.Errorf("expected ErrInvalidPage for page 0, got %v", err)
	}
	if _, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 1, 0); !errors.Is(err, moderation.ErrInvalidPage) {
		t.Errorf("expected ErrInvalidPage for limit 0, got %v", err)
	}
}

func TestListByStatusStoreFailure(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.FetchError = errors.New("connection refused")

	queue := moderation.NewQueue(store)
	if _, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 1, 10); err == nil {
		t.Error("expected fetch failure to propagate")
	}
}

func TestResolveComment(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(12, 3, 4, "a comment", time.Hour))

	queue := moderation.NewQueue(store)
	item, err := queue.Resolve(context.Background(), "12")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if item.Kind != moderation.KindComment {
		t.Errorf("expected comment kind, got %s", item.Kind)
	}
	if item.Comment.ID != 12 {
		t.Errorf("expected comment 12, got %d", item.Comment.ID)
	}
}

func TestResolveReview(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddReview(pendingReview(42, 17, 5, "loved it", time.Hour))

	queue := moderation.NewQueue(store)
	item, err := queue.Resolve(context.Background(), "review_42_17")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if item.Kind != moderation.KindReview {
		t.Errorf("expected review kind, got %s", item.Kind)
	}
	if item.Review.UserID != 42 || item.Review.GameID != 17 {
		t.Errorf("resolved wrong review: user %d game %d", item.Review.UserID, item.Review.GameID)
	}
}

func TestResolveErrors(t *testing.T) {
	queue := moderation.NewQueue(mocks.NewMockModerationStore())

	if _, err := queue.Resolve(context.Background(), "review_abc_1"); !errors.Is(err, moderation.ErrInvalidIdentifier) {
		t.Errorf("expected ErrInvalidIdentifier for malformed review id, got %v", err)
	}
	if _, err := queue.Resolve(context.Background(), "not-a-number"); !errors.Is(err, moderation.ErrInvalidIdentifier) {
		t.Errorf("expected ErrInvalidIdentifier for non-numeric comment id, got %v", err)
	}
	if _, err := queue.Resolve(context.Background(), "99"); !errors.Is(err, moderation.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing comment, got %v", err)
	}
	if _, err := queue.Resolve(context.Background(), "review_9_9"); !errors.Is(err, moderation.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing review, got %v", err)
	}
}

func TestBodilessRatingsExcluded(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(1, 1, 1, "visible", time.Hour))
	store.AddReview(pendingReview(2, 1, 4, "also visible", 2*time.Hour))
	store.AddReview(pendingReview(3, 1, 5, "", 3*time.Hour)) // score only

	queue := moderation.NewQueue(store)
	page, err := queue.ListByStatus(context.Background(), moderation.StatusPending, 1, 10)
	if err != nil {
		t.Fatalf("ListByStatus returned error: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("expected score-only rating excluded from feed, got total %d", page.Total)
	}

	counts, err := queue.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}
	if counts.Pending != 2 {
		t.Errorf("expected 2 pending, got %d", counts.Pending)
	}
	if counts.Total != 2 {
		t.Errorf("expected total 2, got %d", counts.Total)
	}
}

func TestCounts(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(pendingComment(1, 1, 1, "pending", time.Hour))
	approved := pendingComment(2, 1, 1, "approved", time.Hour)
	approved.IsApproved = true
	store.AddComment(approved)
	reason := "spam"
	flagged := pendingReview(2, 1, 1, "flagged", time.Hour)
	flagged.IsFlagged = true
	flagged.FlagReason = &reason
	store.AddReview(flagged)
	store.AddReview(pendingReview(3, 1, 5, "pending review", time.Hour))

	queue := moderation.NewQueue(store)
	counts, err := queue.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}
	if counts.Pending != 2 || counts.Approved != 1 || counts.Flagged != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
	if counts.Total != 4 {
		t.Errorf("expected total 4, got %d", counts.Total)
	}
}
