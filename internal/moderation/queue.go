package moderation

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// Queue merges comments and written reviews into one time-ordered,
// paginated moderation feed and resolves feed identifiers back to the
// underlying records.
type Queue struct {
	store Store
}

func NewQueue(store Store) *Queue {
	if store == nil {
		panic("moderation store cannot be nil")
	}
	return &Queue{store: store}
}

// Page is one slice of the merged feed. Totals are computed over both
// content kinds combined, never per kind.
type Page struct {
	Items []FeedEntry `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Pages int         `json:"pages"`
}

type Counts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Flagged  int64 `json:"flagged"`
	Total    int64 `json:"total"`
}

// ListByStatus fetches both kinds for the requested bucket, merges them,
// sorts by creation time descending and slices out the requested page.
// Pagination happens in memory because the two kinds live in different
// tables and the page must be cut from the combined ordering.
func (q *Queue) ListByStatus(ctx context.Context, status Status, page, limit int) (*Page, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPage
	}

	comments, err := q.store.CommentsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	reviews, err := q.store.ReviewsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	items := make([]ContentItem, 0, len(comments)+len(reviews))
	for i := range comments {
		items = append(items, NewCommentItem(&comments[i]))
	}
	for i := range reviews {
		items = append(items, NewReviewItem(&reviews[i]))
	}

	// Stable sort on timestamp only; sub-second precision makes explicit
	// tie-breaking unnecessary.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})

	total := len(items)
	start := (page - 1) * limit
	// The multiply can wrap for absurd page numbers; any wrapped value is
	// past the end of the feed, same as an honest over-range page.
	if start < 0 || start > total || start/limit != page-1 {
		start = total
	}
	end := start + limit
	if end > total || end < start {
		end = total
	}

	entries := make([]FeedEntry, 0, end-start)
	for _, item := range items[start:end] {
		entries = append(entries, item.Entry())
	}

	pages := total / limit
	if total%limit > 0 {
		pages++
	}

	return &Page{
		Items: entries,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}, nil
}

// Resolve maps a feed identifier back to the record it names. Composite
// review identifiers are parsed; anything else is treated as a native
// comment id.
func (q *Queue) Resolve(ctx context.Context, id string) (ContentItem, error) {
	if IsReviewID(id) {
		key, err := ParseReviewKey(id)
		if err != nil {
			return ContentItem{}, err
		}
		review, err := q.store.ReviewByKey(ctx, key)
		if err != nil {
			return ContentItem{}, err
		}
		return NewReviewItem(review), nil
	}

	commentID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return ContentItem{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	comment, err := q.store.CommentByID(ctx, uint(commentID))
	if err != nil {
		return ContentItem{}, err
	}
	return NewCommentItem(comment), nil
}

// Counts aggregates the three buckets across both kinds. Total counts
// every comment plus every rating with review text, regardless of status.
func (q *Queue) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}

	for _, status := range []Status{StatusPending, StatusApproved, StatusFlagged} {
		comments, err := q.store.CountCommentsByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to count comments: %w", err)
		}
		reviews, err := q.store.CountReviewsByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to count reviews: %w", err)
		}
		switch status {
		case StatusPending:
			counts.Pending = comments + reviews
		case StatusApproved:
			counts.Approved = comments + reviews
		case StatusFlagged:
			counts.Flagged = comments + reviews
		}
	}

	comments, err := q.store.CountComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	reviews, err := q.store.CountReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	counts.Total = comments + reviews

	return counts, nil
}
