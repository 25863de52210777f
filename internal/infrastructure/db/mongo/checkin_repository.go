package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/communityos/eventhub/internal/core/domain"
)

const collectionCheckins = "checkins"

type CheckinRepository struct {
	coll *mongo.Collection
}

func NewCheckinRepository(db *mongo.Database) *CheckinRepository {
	return &CheckinRepository{coll: db.Collection(collectionCheckins)}
}

type mongoCheckin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EventID      string             `bson:"event_id"`
	UserID       string             `bson:"user_id"`
	RegisteredAt int64              `bson:"registered_at"`
	CheckedInAt  int64              `bson:"checked_in_at,omitempty"`
	Source       string             `bson:"source,omitempty"`
}

func (mc *mongoCheckin) toDomain() *domain.Checkin {
	c := &domain.Checkin{
		ID:           mc.ID.Hex(),
		EventID:      mc.EventID,
		UserID:       mc.UserID,
		RegisteredAt: unixToTime(mc.RegisteredAt),
		Source:       mc.Source,
	}
	if mc.CheckedInAt != 0 {
		at := unixToTime(mc.CheckedInAt)
		c.CheckedInAt = &at
	}
	return c
}

func (r *CheckinRepository) Create(ctx context.Context, checkin *domain.Checkin) (*domain.Checkin, error) {
	doc := mongoCheckin{
		EventID:      checkin.EventID,
		UserID:       checkin.UserID,
		RegisteredAt: checkin.RegisteredAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert checkin: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CheckinRepository) FindByID(ctx context.Context, id string) (*domain.Checkin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCheckinNotFound
	}

	var mc mongoCheckin
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCheckinNotFound
		}
		return nil, fmt.Errorf("find checkin: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CheckinRepository) FindByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Checkin, error) {
	var mc mongoCheckin
	filter := bson.M{"event_id": eventID, "user_id": userID}
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCheckinNotFound
		}
		return nil, fmt.Errorf("find checkin: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CheckinRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Checkin, error) {
	cur, err := r.coll.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Checkin
	for cur.Next(ctx) {
		var mc mongoCheckin
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode checkin: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cur.Err()
}

func (r *CheckinRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return 0, fmt.Errorf("count checkins: %w", err)
	}
	return n, nil
}

// MarkCheckedIn stamps the registration in a single conditional update so two
// concurrent scans cannot both write a timestamp.
func (r *CheckinRepository) MarkCheckedIn(ctx context.Context, eventID, userID string, at time.Time, source string) error {
	filter := bson.M{
		"event_id":      eventID,
		"user_id":       userID,
		"checked_in_at": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"checked_in_at": at.Unix(),
		"source":        source,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mark checked in: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish "never registered" from "already checked in".
		n, err := r.coll.CountDocuments(ctx, bson.M{"event_id": eventID, "user_id": userID})
		if err != nil {
			return fmt.Errorf("mark checked in: %w", err)
		}
		if n == 0 {
			return domain.ErrCheckinNotFound
		}
	}
	return nil
}

func (r *CheckinRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCheckinNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCheckinNotFound
	}
	return nil
}

// EnsureIndexes creates the unique event/user index backing registration
// idempotency and the atomic check-in update.
func (r *CheckinRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
