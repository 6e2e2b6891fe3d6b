package mongodb

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository는 MongoDB 기반 리뷰 저장소입니다
type ReviewRepository struct {
	database   *mongo.Database
	collection *mongo.Collection
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

type reviewDocument struct {
	ID          string  `bson:"_id"`
	MovieInfoID string  `bson:"movie_info_id"`
	Comment     string  `bson:"comment"`
	Rating      float64 `bson:"rating"`
}

func toReviewDocument(review *entity.Review) *reviewDocument {
	return &reviewDocument{
		ID:          review.ID,
		MovieInfoID: review.MovieInfoID,
		Comment:     review.Comment,
		Rating:      review.Rating,
	}
}

func (d *reviewDocument) toEntity() *entity.Review {
	return &entity.Review{
		ID:          d.ID,
		MovieInfoID: d.MovieInfoID,
		Comment:     d.Comment,
		Rating:      d.Rating,
	}
}

// NewReviewRepository는 새로운 MongoDB 리뷰 저장소를 생성합니다
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		database:   db,
		collection: db.Collection(ReviewCollection),
	}
}

// Save는 id 기준 upsert로 리뷰를 저장합니다
func (r *ReviewRepository) Save(ctx context.Context, review *entity.Review) (err error) {
	start := time.Now()
	defer func() { recordOperation(ctx, "save", ReviewCollection, start, err) }()

	_, err = r.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: review.ID}},
		toReviewDocument(review),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// FindByID는 id로 리뷰를 조회합니다
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (review *entity.Review, err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, entity.ErrReviewNotFound) {
			recordOperation(ctx, "find", ReviewCollection, start, nil)
			return
		}
		recordOperation(ctx, "find", ReviewCollection, start, err)
	}()

	var doc reviewDocument
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ReviewNotFound(id)
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	return doc.toEntity(), nil
}

// Find는 조건에 맞는 리뷰를 id 순으로 지연 순회합니다
func (r *ReviewRepository) Find(ctx context.Context, filter repository.ReviewFilter) iter.Seq2[*entity.Review, error] {
	query := bson.D{}
	if filter.MovieInfoID != nil {
		query = append(query, bson.E{Key: "movie_info_id", Value: *filter.MovieInfoID})
	}

	return func(yield func(*entity.Review, error) bool) {
		start := time.Now()
		opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

		cursor, err := r.collection.Find(ctx, query, opts)
		if err != nil {
			recordOperation(ctx, "find_many", ReviewCollection, start, err)
			yield(nil, fmt.Errorf("failed to find reviews: %w", err))
			return
		}
		defer cursor.Close(ctx)

		err = drain(ctx, cursor, func(doc *reviewDocument) *entity.Review { return doc.toEntity() }, yield)
		recordOperation(ctx, "find_many", ReviewCollection, start, err)
	}
}

// DeleteByID는 id로 리뷰를 삭제합니다. 삭제된 문서가 없어도 성공입니다
func (r *ReviewRepository) DeleteByID(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { recordOperation(ctx, "delete", ReviewCollection, start, err) }()

	if _, err = r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// HealthCheck는 MongoDB 연결 상태를 확인합니다
func (r *ReviewRepository) HealthCheck(ctx context.Context) error {
	return ping(ctx, r.database)
}
