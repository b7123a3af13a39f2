package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contesthub/backend/internal/core/domain"
)

const collectionPayments = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

type mongoPayment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	ContestID     string             `bson:"contest_id"`
	ContestName   string             `bson:"contest_name,omitempty"`
	Amount        float64            `bson:"amount"`
	TransactionID string             `bson:"transaction_id"`
	PaidAt        time.Time          `bson:"paid_at"`
}

func (mp *mongoPayment) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:            mp.ID.Hex(),
		Email:         mp.Email,
		ContestID:     mp.ContestID,
		ContestName:   mp.ContestName,
		Amount:        mp.Amount,
		TransactionID: mp.TransactionID,
		PaidAt:        mp.PaidAt,
	}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPayment{
		Email:         p.Email,
		ContestID:     p.ContestID,
		ContestName:   p.ContestName,
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicatePayment
		}
		return "", fmt.Errorf("insert payment: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert payment: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *PaymentRepository) ExistsForContest(ctx context.Context, email, contestID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"email": email, "contest_id": contestID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("payment lookup: %w", err)
	}
	return n > 0, nil
}

func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var mp mongoPayment
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, mp.toDomain())
	}
	return payments, cur.Err()
}

func (r *PaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("total revenue: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode total revenue: %w", err)
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}

// EnsureIndexes creates the lookup index for the submission payment gate.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "contest_id", Value: 1}},
	})
	return err
}
