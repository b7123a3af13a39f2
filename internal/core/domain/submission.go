package domain

import (
	"errors"
	"time"
)

var ErrSubmissionNotFound = errors.New("submission not found")
var ErrDuplicateSubmission = errors.New("submission already exists for this contest")
var ErrPaymentRequired = errors.New("no payment recorded for this contest")

// Submission is a participant's entry into a contest. At most one submission
// exists per (contest, participant) pair; the store enforces this with a
// unique index rather than a read-before-write check.
type Submission struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	ContestID   string         `json:"contest_id" bson:"contest_id"`
	Email       string         `json:"email" bson:"email"`
	Entry       map[string]any `json:"entry" bson:"entry"`
	SubmittedAt time.Time      `json:"submitted_at" bson:"submitted_at"`
}
