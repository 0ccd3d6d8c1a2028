package moderation

import (
	"fmt"
	"strconv"
	"strings"
)

const reviewIDPrefix = "review_"

// ReviewKey is the natural key of a written review. Reviews have no
// surrogate id, so the feed identifies them by this pair, serialized as
// "review_<authorID>_<subjectID>" at the presentation boundary only.
type ReviewKey struct {
	AuthorID  uint
	SubjectID uint
}

func (k ReviewKey) String() string {
	return fmt.Sprintf("%s%d_%d", reviewIDPrefix, k.AuthorID, k.SubjectID)
}

// IsReviewID reports whether id claims to be a composite review
// identifier. It says nothing about whether the id is well-formed.
func IsReviewID(id string) bool {
	return strings.HasPrefix(id, reviewIDPrefix)
}

// ParseReviewKey parses a composite identifier back into its key.
// Wrong segment counts and non-numeric segments both yield
// ErrInvalidIdentifier.
func ParseReviewKey(id string) (ReviewKey, error) {
	if !IsReviewID(id) {
		return ReviewKey{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	parts := strings.Split(strings.TrimPrefix(id, reviewIDPrefix), "_")
	if len(parts) != 2 {
		return ReviewKey{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	authorID, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return ReviewKey{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	subjectID, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return ReviewKey{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	return ReviewKey{AuthorID: uint(authorID), SubjectID: uint(subjectID)}, nil
}
