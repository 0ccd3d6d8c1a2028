package mocks

import (
	"context"

	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/moderation"
)

// MockModerationStore is an in-memory implementation of moderation.Store
type MockModerationStore struct {
	Comments map[uint]*models.Comment
	Reviews  map[moderation.ReviewKey]*models.Rating

	SaveError   error
	DeleteError error
	FetchError  error

	SaveCommentCalls int
	SaveReviewCalls  int
	DeletedComments  []uint
}

func NewMockModerationStore() *MockModerationStore {
	return &MockModerationStore{
		Comments: make(map[uint]*models.Comment),
		Reviews:  make(map[moderation.ReviewKey]*models.Rating),
	}
}

func (m *MockModerationStore) AddComment(c *models.Comment) {
	m.Comments[c.ID] = c
}

func (m *MockModerationStore) AddReview(r *models.Rating) {
	m.Reviews[moderation.ReviewKey{AuthorID: r.UserID, SubjectID: r.GameID}] = r
}

func matchesStatus(approved, flagged bool, status moderation.Status) bool {
	switch status {
	case moderation.StatusApproved:
		return approved
	case moderation.StatusFlagged:
		return flagged
	default:
		return !approved && !flagged
	}
}

func (m *MockModerationStore) CommentsByStatus(ctx context.Context, status moderation.Status) ([]models.Comment, error) {
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	var out []models.Comment
	for _, c := range m.Comments {
		if matchesStatus(c.IsApproved, c.IsFlagged, status) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MockModerationStore) ReviewsByStatus(ctx context.Context, status moderation.Status) ([]models.Rating, error) {
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	var out []models.Rating
	for _, r := range m.Reviews {
		if r.Body != "" && matchesStatus(r.IsApproved, r.IsFlagged, status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *MockModerationStore) CommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	c, ok := m.Comments[id]
	if !ok {
		return nil, moderation.ErrNotFound
	}
	return c, nil
}

func (m *MockModerationStore) ReviewByKey(ctx context.Context, key moderation.ReviewKey) (*models.Rating, error) {
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	r, ok := m.Reviews[key]
	if !ok {
		return nil, moderation.ErrNotFound
	}
	return r, nil
}

func (m *MockModerationStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	m.SaveCommentCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockModerationStore) SaveReview(ctx context.Context, rating *models.Rating) error {
	m.SaveReviewCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Reviews[moderation.ReviewKey{AuthorID: rating.UserID, SubjectID: rating.GameID}] = rating
	return nil
}

func (m *MockModerationStore) DeleteComment(ctx context.Context, comment *models.Comment) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.DeletedComments = append(m.DeletedComments, comment.ID)
	delete(m.Comments, comment.ID)
	return nil
}

func (m *MockModerationStore) CountCommentsByStatus(ctx context.Context, status moderation.Status) (int64, error) {
	if m.FetchError != nil {
		return 0, m.FetchError
	}
	var count int64
	for _, c := range m.Comments {
		if matchesStatus(c.IsApproved, c.IsFlagged, status) {
			count++
		}
	}
	return count, nil
}

func (m *MockModerationStore) CountReviewsByStatus(ctx context.Context, status moderation.Status) (int64, error) {
	if m.FetchError != nil {
		return 0, m.FetchError
	}
	var count int64
	for _, r := range m.Reviews {
		if r.Body != "" && matchesStatus(r.IsApproved, r.IsFlagged, status) {
			count++
		}
	}
	return count, nil
}

func (m *MockModerationStore) CountComments(ctx context.Context) (int64, error) {
	if m.FetchError != nil {
		return 0, m.FetchError
	}
	return int64(len(m.Comments)), nil
}

func (m *MockModerationStore) CountReviews(ctx context.Context) (int64, error) {
	if m.FetchError != nil {
		return 0, m.FetchError
	}
	var count int64
	for _, r := range m.Reviews {
		if r.Body != "" {
			count++
		}
	}
	return count, nil
}

// MockNotifier records notification calls and optionally fails them.
type MockNotifier struct {
	ApprovedCalls []string
	RejectedCalls []string
	Reasons       []string
	NotifyError   error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyApproved(ctx context.Context, item moderation.ContentItem) error {
	m.ApprovedCalls = append(m.ApprovedCalls, item.FeedID())
	return m.NotifyError
}

func (m *MockNotifier) NotifyRejected(ctx context.Context, item moderation.ContentItem, reason string) error {
	m.RejectedCalls = append(m.RejectedCalls, item.FeedID())
	m.Reasons = append(m.Reasons, reason)
	return m.NotifyError
}
