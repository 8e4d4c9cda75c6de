package repository

import (
	"context"
	"errors"
	"fmt"

	"campdir/internal/common"
	"campdir/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BootcampRepository interface {
	Create(ctx context.Context, b *model.Bootcamp) error
	List(ctx context.Context, q *ListQuery) ([]model.Bootcamp, *Pagination, error)
	FindByID(ctx context.Context, id string) (*model.Bootcamp, error)
	FindByOwner(ctx context.Context, userID string) (*model.Bootcamp, error)
	FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]model.Bootcamp, error)
	Update(ctx context.Context, b *model.Bootcamp) error
	Delete(ctx context.Context, id string) error
}

type mongoBootcampRepository struct {
	coll *mongo.Collection
}

func NewMongoBootcampRepository(db *mongo.Database) BootcampRepository {
	return &mongoBootcampRepository{coll: db.Collection("bootcamps")}
}

func (r *mongoBootcampRepository) Create(ctx context.Context, b *model.Bootcamp) error {
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err
		}
		return fmt.Errorf("mongoBootcampRepository.Create: %w", err)
	}
	return nil
}

func (r *mongoBootcampRepository) List(ctx context.Context, q *ListQuery) ([]model.Bootcamp, *Pagination, error) {
	// total counted against the active filter so next/prev reflect what
	// the caller can actually page through
	total, err := r.coll.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, nil, fmt.Errorf("mongoBootcampRepository.List count: %w", err)
	}

	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}

	cursor, err := r.coll.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, nil, translateFilterError("mongoBootcampRepository.List", err)
	}

	bootcamps := []model.Bootcamp{}
	if err := cursor.All(ctx, &bootcamps); err != nil {
		return nil, nil, fmt.Errorf("mongoBootcampRepository.List decode: %w", err)
	}
	return bootcamps, NewPagination(q.Page, q.Limit, total), nil
}

func (r *mongoBootcampRepository) FindByID(ctx context.Context, id string) (*model.Bootcamp, error) {
	b := &model.Bootcamp{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoBootcampRepository.FindByID: %w", err)
	}
	return b, nil
}

func (r *mongoBootcampRepository) FindByOwner(ctx context.Context, userID string) (*model.Bootcamp, error) {
	b := &model.Bootcamp{}
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoBootcampRepository.FindByOwner: %w", err)
	}
	return b, nil
}

func (r *mongoBootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]model.Bootcamp, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radiusRadians},
			},
		},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoBootcampRepository.FindWithinRadius: %w", err)
	}

	bootcamps := []model.Bootcamp{}
	if err := cursor.All(ctx, &bootcamps); err != nil {
		return nil, fmt.Errorf("mongoBootcampRepository.FindWithinRadius decode: %w", err)
	}
	return bootcamps, nil
}

func (r *mongoBootcampRepository) Update(ctx context.Context, b *model.Bootcamp) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err
		}
		return fmt.Errorf("mongoBootcampRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoBootcampRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoBootcampRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// translateFilterError surfaces malformed filter payloads as a client
// error instead of a 500.
func translateFilterError(op string, err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel("BadValue") {
		return fmt.Errorf("%s: malformed filter: %w", op, common.ErrBadRequest)
	}
	return fmt.Errorf("%s: %w", op, err)
}
