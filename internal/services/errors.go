package services

import "errors"

// Domain errors surfaced to the write path's caller. They are never retried
// and never leave partial state behind.
var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrFeedbackNotPostOwner is returned when someone other than the owner
	// of the comment's post tries to leave feedback on the comment.
	ErrFeedbackNotPostOwner = errors.New("feedback author is not the post owner")

	// ErrFeedbackExists is returned when a comment already has feedback.
	ErrFeedbackExists = errors.New("comment already has feedback")

	// ErrNotPetOwner is returned when a post references a pet the author does not own.
	ErrNotPetOwner = errors.New("pet does not belong to the author")
)
