package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/communityos/eventhub/internal/core/domain"
)

const collectionSpeakerApplications = "speaker_applications"

type SpeakerRepository struct {
	coll *mongo.Collection
}

func NewSpeakerRepository(db *mongo.Database) *SpeakerRepository {
	return &SpeakerRepository{coll: db.Collection(collectionSpeakerApplications)}
}

type mongoApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   string             `bson:"event_id"`
	UserID    string             `bson:"user_id"`
	Title     string             `bson:"title"`
	Abstract  string             `bson:"abstract,omitempty"`
	Status    string             `bson:"status"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (ma *mongoApplication) toDomain() *domain.SpeakerApplication {
	return &domain.SpeakerApplication{
		ID:        ma.ID.Hex(),
		EventID:   ma.EventID,
		UserID:    ma.UserID,
		Title:     ma.Title,
		Abstract:  ma.Abstract,
		Status:    domain.ApplicationStatus(ma.Status),
		CreatedAt: unixToTime(ma.CreatedAt),
		UpdatedAt: unixToTime(ma.UpdatedAt),
	}
}

func (r *SpeakerRepository) Create(ctx context.Context, app *domain.SpeakerApplication) (*domain.SpeakerApplication, error) {
	doc := mongoApplication{
		EventID:   app.EventID,
		UserID:    app.UserID,
		Title:     app.Title,
		Abstract:  app.Abstract,
		Status:    string(app.Status),
		CreatedAt: app.CreatedAt.Unix(),
		UpdatedAt: app.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrApplicationExists
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SpeakerRepository) FindByID(ctx context.Context, id string) (*domain.SpeakerApplication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}

	var ma mongoApplication
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *SpeakerRepository) FindByEventAndUser(ctx context.Context, eventID, userID string) (*domain.SpeakerApplication, error) {
	var ma mongoApplication
	filter := bson.M{"event_id": eventID, "user_id": userID}
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *SpeakerRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.SpeakerApplication, error) {
	cur, err := r.coll.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.SpeakerApplication
	for cur.Next(ctx) {
		var ma mongoApplication
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	return out, cur.Err()
}

func (r *SpeakerRepository) Update(ctx context.Context, app *domain.SpeakerApplication) error {
	oid, err := primitive.ObjectIDFromHex(app.ID)
	if err != nil {
		return domain.ErrApplicationNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":      app.Title,
		"abstract":   app.Abstract,
		"status":     string(app.Status),
		"updated_at": app.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}
