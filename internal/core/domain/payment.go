package domain

import (
	"errors"
	"time"
)

var ErrInvalidAmount = errors.New("payment amount must be positive")
var ErrDuplicatePayment = errors.New("payment already recorded")
var ErrPaymentProvider = errors.New("payment provider request failed")

// Payment records a confirmed charge for contest participation.
// ContestID is kept as a plain string field; the increment path parses it
// when resolving the target contest.
type Payment struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Email         string    `json:"email" bson:"email"`
	ContestID     string    `json:"contest_id" bson:"contest_id"`
	ContestName   string    `json:"contest_name,omitempty" bson:"contest_name,omitempty"`
	Amount        float64   `json:"amount" bson:"amount"`
	TransactionID string    `json:"transaction_id" bson:"transaction_id"`
	PaidAt        time.Time `json:"paid_at" bson:"paid_at"`
}
