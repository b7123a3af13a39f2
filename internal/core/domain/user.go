package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleUser    Role = "user"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates a raw role string against the known set.
// Anything outside the set is rejected rather than persisted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleCreator, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// User models a registered account. Email is the identity key; exactly one
// role is held at a time and defaults to RoleUser on first registration.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name" bson:"name"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
