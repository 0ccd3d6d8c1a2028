package moderation

import (
	"errors"
	"testing"
)

func TestReviewKeyString(t *testing.T) {
	key := ReviewKey{AuthorID: 42, SubjectID: 17}
	if got := key.String(); got != "review_42_17" {
		t.Errorf("expected review_42_17, got %s", got)
	}
}

func TestParseReviewKeyRoundTrip(t *testing.T) {
	keys := []ReviewKey{
		{AuthorID: 1, SubjectID: 1},
		{AuthorID: 42, SubjectID: 17},
		{AuthorID: 4294967295, SubjectID: 9},
	}
	for _, key := range keys {
		parsed, err := ParseReviewKey(key.String())
		if err != nil {
			t.Fatalf("ParseReviewKey(%s) returned error: %v", key.String(), err)
		}
		if parsed != key {
			t.Errorf("round trip mismatch: sent %+v, got %+v", key, parsed)
		}
	}
}

func TestParseReviewKeyInvalid(t *testing.T) {
	ids := []string{
		"review_abc_1",
		"review_1_abc",
		"review_1",
		"review_1_2_3",
		"review__",
		"review_-1_2",
		"42",
		"",
	}
	for _, id := range ids {
		if _, err := ParseReviewKey(id); !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("ParseReviewKey(%q): expected ErrInvalidIdentifier, got %v", id, err)
		}
	}
}

func TestIsReviewID(t *testing.T) {
	if !IsReviewID("review_1_2") {
		t.Error("expected review_1_2 to be recognized as a review id")
	}
	if IsReviewID("123") {
		t.Error("expected bare numeric id not to be a review id")
	}
	// Malformed but prefixed ids still claim to be review ids; parsing
	// decides validity.
	if !IsReviewID("review_garbage") {
		t.Error("expected prefixed id to be recognized regardless of shape")
	}
}
