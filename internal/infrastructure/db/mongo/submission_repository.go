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

const collectionSubmissions = "submissions"

type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection(collectionSubmissions)}
}

type mongoSubmission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ContestID   string             `bson:"contest_id"`
	Email       string             `bson:"email"`
	Entry       map[string]any     `bson:"entry"`
	SubmittedAt time.Time          `bson:"submitted_at"`
}

func (ms *mongoSubmission) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:          ms.ID.Hex(),
		ContestID:   ms.ContestID,
		Email:       ms.Email,
		Entry:       ms.Entry,
		SubmittedAt: ms.SubmittedAt,
	}
}

// Insert writes a submission. The unique (contest_id, email) index turns a
// concurrent double-submit into a duplicate-key error instead of a second
// document.
func (r *SubmissionRepository) Insert(ctx context.Context, s *domain.Submission) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSubmission{
		ContestID:   s.ContestID,
		Email:       s.Email,
		Entry:       s.Entry,
		SubmittedAt: s.SubmittedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateSubmission
		}
		return "", fmt.Errorf("insert submission: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert submission: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *SubmissionRepository) ListByContest(ctx context.Context, contestID string) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"contest_id": contestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer cur.Close(ctx)

	var submissions []*domain.Submission
	for cur.Next(ctx) {
		var ms mongoSubmission
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		submissions = append(submissions, ms.toDomain())
	}
	return submissions, cur.Err()
}

func (r *SubmissionRepository) ExistsForContest(ctx context.Context, email, contestID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"email": email, "contest_id": contestID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("submission lookup: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the unique pair index enforcing one entry per
// (contest, participant).
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "contest_id", Value: 1}, {Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
