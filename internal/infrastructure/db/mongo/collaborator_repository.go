package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/communityos/eventhub/internal/core/domain"
)

const collectionCollaborators = "collaborator_assignments"

type CollaboratorRepository struct {
	coll *mongo.Collection
}

func NewCollaboratorRepository(db *mongo.Database) *CollaboratorRepository {
	return &CollaboratorRepository{coll: db.Collection(collectionCollaborators)}
}

type mongoAssignment struct {
	EventID   string `bson:"event_id"`
	UserID    string `bson:"user_id"`
	CreatedAt int64  `bson:"created_at"`
}

// Assign is idempotent: re-assigning an existing pair is not an error.
func (r *CollaboratorRepository) Assign(ctx context.Context, assignment *domain.CollaboratorAssignment) error {
	doc := mongoAssignment{
		EventID:   assignment.EventID,
		UserID:    assignment.UserID,
		CreatedAt: assignment.CreatedAt.Unix(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *CollaboratorRepository) Remove(ctx context.Context, eventID, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"event_id": eventID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("remove assignment: %w", err)
	}
	return nil
}

func (r *CollaboratorRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"event_id": eventID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return n > 0, nil
}

func (r *CollaboratorRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.CollaboratorAssignment, error) {
	cur, err := r.coll.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.CollaboratorAssignment
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		out = append(out, &domain.CollaboratorAssignment{
			EventID:   ma.EventID,
			UserID:    ma.UserID,
			CreatedAt: unixToTime(ma.CreatedAt),
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique event/user pair index.
func (r *CollaboratorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
