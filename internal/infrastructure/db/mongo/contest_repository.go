package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

const collectionContests = "contests"

type ContestRepository struct {
	col *mongo.Collection
}

func NewContestRepository(db *mongo.Database) *ContestRepository {
	return &ContestRepository{col: db.Collection(collectionContests)}
}

type mongoContest struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	Type               string             `bson:"type"`
	Image              string             `bson:"image,omitempty"`
	Description        string             `bson:"description"`
	Instructions       string             `bson:"instructions,omitempty"`
	Fee                float64            `bson:"fee"`
	PrizeMoney         float64            `bson:"prize_money"`
	Deadline           time.Time          `bson:"deadline"`
	Status             string             `bson:"status"`
	ParticipationCount int64              `bson:"participation_count"`
	CreatorEmail       string             `bson:"creator_email"`
	CreatedAt          time.Time          `bson:"created_at"`
	Winner             *domain.Winner     `bson:"winner,omitempty"`
	Extra              map[string]any     `bson:"extra,omitempty"`
}

func (mc *mongoContest) toDomain() *domain.Contest {
	return &domain.Contest{
		ID:                 mc.ID.Hex(),
		Name:               mc.Name,
		Type:               mc.Type,
		Image:              mc.Image,
		Description:        mc.Description,
		Instructions:       mc.Instructions,
		Fee:                mc.Fee,
		PrizeMoney:         mc.PrizeMoney,
		Deadline:           mc.Deadline,
		Status:             domain.ContestStatus(mc.Status),
		ParticipationCount: mc.ParticipationCount,
		CreatorEmail:       mc.CreatorEmail,
		CreatedAt:          mc.CreatedAt,
		Winner:             mc.Winner,
		Extra:              mc.Extra,
	}
}

// searchRegex builds a case-insensitive literal substring matcher. The user
// input is quoted so regex metacharacters cannot alter or break the query.
func searchRegex(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

// parseID converts the external id into an ObjectID; a malformed id maps to
// not-found at this layer, well-formedness is checked at the transport edge.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrContestNotFound
	}
	return oid, nil
}

func (r *ContestRepository) Create(ctx context.Context, c *domain.Contest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoContest{
		Name:               c.Name,
		Type:               c.Type,
		Image:              c.Image,
		Description:        c.Description,
		Instructions:       c.Instructions,
		Fee:                c.Fee,
		PrizeMoney:         c.PrizeMoney,
		Deadline:           c.Deadline,
		Status:             string(c.Status),
		ParticipationCount: c.ParticipationCount,
		CreatorEmail:       c.CreatorEmail,
		CreatedAt:          c.CreatedAt,
		Extra:              c.Extra,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert contest: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert contest: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *ContestRepository) FindByID(ctx context.Context, id string) (*domain.Contest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoContest
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContestNotFound
		}
		return nil, fmt.Errorf("find contest: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ContestRepository) List(ctx context.Context, filter ports.ListContestsFilter) ([]*domain.Contest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": searchRegex(filter.Search)}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count contests: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list contests: %w", err)
	}
	defer cur.Close(ctx)

	contests, err := decodeContests(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return contests, total, nil
}

func (r *ContestRepository) ListByCreator(ctx context.Context, creatorEmail string) ([]*domain.Contest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"creator_email": creatorEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("list creator contests: %w", err)
	}
	defer cur.Close(ctx)

	return decodeContests(ctx, cur)
}

func (r *ContestRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Contest, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			// A payment may carry a stale or malformed reference; skip it.
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Contest{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("list contests by ids: %w", err)
	}
	defer cur.Close(ctx)

	return decodeContests(ctx, cur)
}

func (r *ContestRepository) UpdateFields(ctx context.Context, id string, patch ports.ContestPatch) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Instructions != nil {
		set["instructions"] = *patch.Instructions
	}
	if patch.Fee != nil {
		set["fee"] = *patch.Fee
	}
	if patch.PrizeMoney != nil {
		set["prize_money"] = *patch.PrizeMoney
	}
	if patch.Deadline != nil {
		set["deadline"] = time.Unix(*patch.Deadline, 0).UTC()
	}
	for k, v := range patch.Extra {
		set["extra."+k] = v
	}
	if len(set) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update contest: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContestNotFound
	}
	return nil
}

func (r *ContestRepository) SetStatus(ctx context.Context, id string, status domain.ContestStatus) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("set contest status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContestNotFound
	}
	return nil
}

func (r *ContestRepository) SetWinner(ctx context.Context, id string, w *domain.Winner) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status": string(domain.StatusCompleted),
		"winner": w,
	}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("set winner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContestNotFound
	}
	return nil
}

func (r *ContestRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contest: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContestNotFound
	}
	return nil
}

func (r *ContestRepository) IncrementParticipation(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"participation_count": 1}})
	if err != nil {
		return fmt.Errorf("increment participation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContestNotFound
	}
	return nil
}

func (r *ContestRepository) Popular(ctx context.Context, limit int) ([]*domain.Contest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "participation_count", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"status": string(domain.StatusAccepted)}, opts)
	if err != nil {
		return nil, fmt.Errorf("popular contests: %w", err)
	}
	defer cur.Close(ctx)

	return decodeContests(ctx, cur)
}

func (r *ContestRepository) CreatorLeaders(ctx context.Context, limit int) ([]ports.CreatorAggregate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.StatusAccepted)}}},
		{{Key: "$group", Value: bson.M{
			"_id":                 "$creator_email",
			"contest_count":       bson.M{"$sum": 1},
			"total_participation": bson.M{"$sum": "$participation_count"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_participation", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("creator leaders: %w", err)
	}
	defer cur.Close(ctx)

	var rows []ports.CreatorAggregate
	for cur.Next(ctx) {
		var row struct {
			Email              string `bson:"_id"`
			ContestCount       int64  `bson:"contest_count"`
			TotalParticipation int64  `bson:"total_participation"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode creator aggregate: %w", err)
		}
		rows = append(rows, ports.CreatorAggregate{
			CreatorEmail:       row.Email,
			ContestCount:       row.ContestCount,
			TotalParticipation: row.TotalParticipation,
		})
	}
	return rows, cur.Err()
}

func (r *ContestRepository) Winners(ctx context.Context) ([]*domain.Contest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"status": string(domain.StatusCompleted),
		"winner": bson.M{"$ne": nil},
	}
	opts := options.Find().SetSort(bson.D{{Key: "winner.declared_at", Value: -1}})

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("winners: %w", err)
	}
	defer cur.Close(ctx)

	return decodeContests(ctx, cur)
}

func (r *ContestRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *ContestRepository) TotalParticipation(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$participation_count"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("total participation: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total int64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode total participation: %w", err)
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}

// EnsureIndexes creates the indexes backing the hot query paths.
func (r *ContestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "participation_count", Value: -1}}},
		{Keys: bson.D{{Key: "creator_email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeContests(ctx context.Context, cur *mongo.Cursor) ([]*domain.Contest, error) {
	var contests []*domain.Contest
	for cur.Next(ctx) {
		var mc mongoContest
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode contest: %w", err)
		}
		contests = append(contests, mc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return contests, nil
}
