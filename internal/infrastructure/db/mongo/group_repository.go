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

const collectionGroups = "user_groups"

type GroupRepository struct {
	coll *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{coll: db.Collection(collectionGroups)}
}

type mongoGroup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	City      string             `bson:"city,omitempty"`
	LeaderID  string             `bson:"leader_id"`
	CreatedAt int64              `bson:"created_at"`
}

func (mg *mongoGroup) toDomain() *domain.UserGroup {
	return &domain.UserGroup{
		ID:        mg.ID.Hex(),
		Name:      mg.Name,
		City:      mg.City,
		LeaderID:  mg.LeaderID,
		CreatedAt: unixToTime(mg.CreatedAt),
	}
}

func (r *GroupRepository) Create(ctx context.Context, group *domain.UserGroup) (*domain.UserGroup, error) {
	doc := mongoGroup{
		Name:      group.Name,
		City:      group.City,
		LeaderID:  group.LeaderID,
		CreatedAt: group.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*domain.UserGroup, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}

	var mg mongoGroup
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *GroupRepository) FindByLeader(ctx context.Context, leaderID string) (*domain.UserGroup, error) {
	var mg mongoGroup
	if err := r.coll.FindOne(ctx, bson.M{"leader_id": leaderID}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group by leader: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *GroupRepository) Update(ctx context.Context, group *domain.UserGroup) error {
	oid, err := primitive.ObjectIDFromHex(group.ID)
	if err != nil {
		return domain.ErrGroupNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":      group.Name,
		"city":      group.City,
		"leader_id": group.LeaderID,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *GroupRepository) List(ctx context.Context) ([]*domain.UserGroup, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.UserGroup
	for cur.Next(ctx) {
		var mg mongoGroup
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		out = append(out, mg.toDomain())
	}
	return out, cur.Err()
}
