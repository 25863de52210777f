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

const collectionSponsors = "sponsors"

type SponsorRepository struct {
	coll *mongo.Collection
}

func NewSponsorRepository(db *mongo.Database) *SponsorRepository {
	return &SponsorRepository{coll: db.Collection(collectionSponsors)}
}

type mongoSponsor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EventID     string             `bson:"event_id"`
	UserGroupID string             `bson:"user_group_id"`
	Name        string             `bson:"name"`
	Tier        string             `bson:"tier"`
	Website     string             `bson:"website,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (ms *mongoSponsor) toDomain() *domain.Sponsor {
	return &domain.Sponsor{
		ID:          ms.ID.Hex(),
		EventID:     ms.EventID,
		UserGroupID: ms.UserGroupID,
		Name:        ms.Name,
		Tier:        ms.Tier,
		Website:     ms.Website,
		CreatedAt:   unixToTime(ms.CreatedAt),
	}
}

func (r *SponsorRepository) Create(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error) {
	doc := mongoSponsor{
		EventID:     sponsor.EventID,
		UserGroupID: sponsor.UserGroupID,
		Name:        sponsor.Name,
		Tier:        sponsor.Tier,
		Website:     sponsor.Website,
		CreatedAt:   sponsor.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert sponsor: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SponsorRepository) FindByID(ctx context.Context, id string) (*domain.Sponsor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSponsorNotFound
	}

	var ms mongoSponsor
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSponsorNotFound
		}
		return nil, fmt.Errorf("find sponsor: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SponsorRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Sponsor, error) {
	cur, err := r.coll.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Sponsor
	for cur.Next(ctx) {
		var ms mongoSponsor
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode sponsor: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	return out, cur.Err()
}

func (r *SponsorRepository) Update(ctx context.Context, sponsor *domain.Sponsor) error {
	oid, err := primitive.ObjectIDFromHex(sponsor.ID)
	if err != nil {
		return domain.ErrSponsorNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":    sponsor.Name,
		"tier":    sponsor.Tier,
		"website": sponsor.Website,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update sponsor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSponsorNotFound
	}
	return nil
}

func (r *SponsorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSponsorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete sponsor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSponsorNotFound
	}
	return nil
}
