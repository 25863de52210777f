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

const collectionContributions = "contributions"

type ContributionRepository struct {
	coll *mongo.Collection
}

func NewContributionRepository(db *mongo.Database) *ContributionRepository {
	return &ContributionRepository{coll: db.Collection(collectionContributions)}
}

type mongoContribution struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EventID     string             `bson:"event_id"`
	UserID      string             `bson:"user_id"`
	Kind        string             `bson:"kind"`
	AmountCents int64              `bson:"amount_cents,omitempty"`
	Currency    string             `bson:"currency,omitempty"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (mc *mongoContribution) toDomain() *domain.Contribution {
	return &domain.Contribution{
		ID:          mc.ID.Hex(),
		EventID:     mc.EventID,
		UserID:      mc.UserID,
		Kind:        domain.ContributionKind(mc.Kind),
		AmountCents: mc.AmountCents,
		Currency:    mc.Currency,
		Description: mc.Description,
		CreatedAt:   unixToTime(mc.CreatedAt),
	}
}

func (r *ContributionRepository) Create(ctx context.Context, contribution *domain.Contribution) (*domain.Contribution, error) {
	doc := mongoContribution{
		EventID:     contribution.EventID,
		UserID:      contribution.UserID,
		Kind:        string(contribution.Kind),
		AmountCents: contribution.AmountCents,
		Currency:    contribution.Currency,
		Description: contribution.Description,
		CreatedAt:   contribution.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert contribution: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ContributionRepository) FindByID(ctx context.Context, id string) (*domain.Contribution, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContributionNotFound
	}

	var mc mongoContribution
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContributionNotFound
		}
		return nil, fmt.Errorf("find contribution: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ContributionRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Contribution, error) {
	cur, err := r.coll.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Contribution
	for cur.Next(ctx) {
		var mc mongoContribution
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode contribution: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cur.Err()
}

func (r *ContributionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContributionNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContributionNotFound
	}
	return nil
}
