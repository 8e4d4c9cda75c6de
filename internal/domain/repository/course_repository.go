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

type CourseRepository interface {
	Create(ctx context.Context, c *model.Course) error
	List(ctx context.Context, q *ListQuery) ([]model.Course, *Pagination, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]model.Course, error)
	FindByID(ctx context.Context, id string) (*model.Course, error)
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
	AverageTuition(ctx context.Context, bootcampID string) (avg float64, count int64, err error)
}

type mongoCourseRepository struct {
	coll *mongo.Collection
}

func NewMongoCourseRepository(db *mongo.Database) CourseRepository {
	return &mongoCourseRepository{coll: db.Collection("courses")}
}

func (r *mongoCourseRepository) Create(ctx context.Context, c *model.Course) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("mongoCourseRepository.Create: %w", err)
	}
	return nil
}

func (r *mongoCourseRepository) List(ctx context.Context, q *ListQuery) ([]model.Course, *Pagination, error) {
	total, err := r.coll.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, nil, fmt.Errorf("mongoCourseRepository.List count: %w", err)
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
		return nil, nil, translateFilterError("mongoCourseRepository.List", err)
	}

	courses := []model.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, nil, fmt.Errorf("mongoCourseRepository.List decode: %w", err)
	}
	return courses, NewPagination(q.Page, q.Limit, total), nil
}

func (r *mongoCourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]model.Course, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, fmt.Errorf("mongoCourseRepository.ListByBootcamp: %w", err)
	}

	courses := []model.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("mongoCourseRepository.ListByBootcamp decode: %w", err)
	}
	return courses, nil
}

func (r *mongoCourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	c := &model.Course{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoCourseRepository.FindByID: %w", err)
	}
	return c, nil
}

func (r *mongoCourseRepository) Update(ctx context.Context, c *model.Course) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("mongoCourseRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoCourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoCourseRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoCourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"bootcamp": bootcampID}); err != nil {
		return fmt.Errorf("mongoCourseRepository.DeleteByBootcamp: %w", err)
	}
	return nil
}

// AverageTuition aggregates the tuition mean over a bootcamp's courses.
// count is 0 when the bootcamp has no courses left.
func (r *mongoCourseRepository) AverageTuition(ctx context.Context, bootcampID string) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$bootcamp",
			"averageTuition": bson.M{"$avg": "$tuition"},
			"count":          bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("mongoCourseRepository.AverageTuition: %w", err)
	}

	var results []struct {
		AverageTuition float64 `bson:"averageTuition"`
		Count          int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("mongoCourseRepository.AverageTuition decode: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].AverageTuition, results[0].Count, nil
}
