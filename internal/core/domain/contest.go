package domain

import (
	"errors"
	"time"
)

// ContestStatus represents the approval lifecycle state of a contest.
type ContestStatus string

const (
	StatusPending   ContestStatus = "pending"
	StatusAccepted  ContestStatus = "accepted"
	StatusRejected  ContestStatus = "rejected"
	StatusCompleted ContestStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
// Rejected and Completed are terminal.
var validTransitions = map[ContestStatus][]ContestStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

var ErrContestNotFound = errors.New("contest not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidStatus = errors.New("invalid contest status")
var ErrInvalidTransition = errors.New("invalid status transition")

// ParseReviewStatus validates an admin-supplied status value. Only the two
// review outcomes are writable through the status endpoint; completed is
// reachable solely via winner declaration.
func ParseReviewStatus(s string) (ContestStatus, error) {
	switch ContestStatus(s) {
	case StatusAccepted, StatusRejected:
		return ContestStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ContestStatus) CanTransitionTo(next ContestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Winner is the sub-record written when a creator declares a contest winner.
type Winner struct {
	Email      string    `json:"email" bson:"email"`
	Name       string    `json:"name" bson:"name"`
	Image      string    `json:"image,omitempty" bson:"image,omitempty"`
	DeclaredAt time.Time `json:"declared_at" bson:"declared_at"`
}

// Contest is the core aggregate root. The typed fields carry everything the
// lifecycle and reporting logic depends on; Extra keeps creator-supplied
// custom fields without loosening the typed invariants.
type Contest struct {
	ID                 string         `json:"id" bson:"_id,omitempty"`
	Name               string         `json:"name" bson:"name"`
	Type               string         `json:"type" bson:"type"`
	Image              string         `json:"image,omitempty" bson:"image,omitempty"`
	Description        string         `json:"description" bson:"description"`
	Instructions       string         `json:"instructions,omitempty" bson:"instructions,omitempty"`
	Fee                float64        `json:"fee" bson:"fee"`
	PrizeMoney         float64        `json:"prize_money" bson:"prize_money"`
	Deadline           time.Time      `json:"deadline" bson:"deadline"`
	Status             ContestStatus  `json:"status" bson:"status"`
	ParticipationCount int64          `json:"participation_count" bson:"participation_count"`
	CreatorEmail       string         `json:"creator_email" bson:"creator_email"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`
	Winner             *Winner        `json:"winner,omitempty" bson:"winner,omitempty"`
	Extra              map[string]any `json:"extra,omitempty" bson:"extra,omitempty"`
}

// OwnedBy reports whether the contest was created by the given email.
func (c *Contest) OwnedBy(email string) bool {
	return c.CreatorEmail == email
}

// Editable reports whether the contest can still be edited or deleted by its
// creator. Only pending contests are editable.
func (c *Contest) Editable() bool {
	return c.Status == StatusPending
}
