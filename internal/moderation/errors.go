package moderation

import "errors"

var (
	// ErrNotFound means a resolved identifier does not correspond to any
	// stored comment or review.
	ErrNotFound = errors.New("content item not found")

	// ErrInvalidIdentifier means a composite identifier does not match the
	// review_<int>_<int> shape.
	ErrInvalidIdentifier = errors.New("invalid content identifier")

	// ErrForbidden means the actor lacks the role required for the
	// requested transition.
	ErrForbidden = errors.New("insufficient role for this action")

	// ErrEmptyReason means a community flag was submitted without a reason.
	ErrEmptyReason = errors.New("flag reason is required")

	ErrInvalidStatus = errors.New("invalid moderation status")
	ErrInvalidAction = errors.New("invalid moderation action")
	ErrInvalidPage   = errors.New("invalid pagination parameters")
)
