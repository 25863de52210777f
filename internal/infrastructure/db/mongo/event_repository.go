package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

const collectionEvents = "events"

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Venue       string             `bson:"venue"`
	StartsAt    int64              `bson:"starts_at"`
	EndsAt      int64              `bson:"ends_at"`
	Capacity    int                `bson:"capacity"`
	UserGroupID string             `bson:"user_group_id"`
	CreatedBy   string             `bson:"created_by"`
	Status      string             `bson:"status"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (me *mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:          me.ID.Hex(),
		Title:       me.Title,
		Description: me.Description,
		Venue:       me.Venue,
		StartsAt:    unixToTime(me.StartsAt),
		EndsAt:      unixToTime(me.EndsAt),
		Capacity:    me.Capacity,
		UserGroupID: me.UserGroupID,
		CreatedBy:   me.CreatedBy,
		Status:      domain.EventStatus(me.Status),
		CreatedAt:   unixToTime(me.CreatedAt),
		UpdatedAt:   unixToTime(me.UpdatedAt),
	}
}

func fromDomainEvent(e *domain.Event) mongoEvent {
	return mongoEvent{
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt.Unix(),
		EndsAt:      e.EndsAt.Unix(),
		Capacity:    e.Capacity,
		UserGroupID: e.UserGroupID,
		CreatedBy:   e.CreatedBy,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt.Unix(),
		UpdatedAt:   e.UpdatedAt.Unix(),
	}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	doc := fromDomainEvent(event)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) List(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, int64, error) {
	query := bson.M{}
	if filter.UserGroupID != "" {
		query["user_group_id"] = filter.UserGroupID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"venue": re},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
		if filter.Page > 1 {
			opts.SetSkip(int64((filter.Page - 1) * filter.Limit))
		}
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Event
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, 0, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, me.toDomain())
	}
	return out, total, cur.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	doc := fromDomainEvent(event)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list and ownership queries rely on.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_group_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "starts_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
