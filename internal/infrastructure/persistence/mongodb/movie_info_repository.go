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

// MovieInfoRepository는 MongoDB 기반 영화 정보 저장소입니다
type MovieInfoRepository struct {
	database   *mongo.Database
	collection *mongo.Collection
}

var _ repository.MovieInfoRepository = (*MovieInfoRepository)(nil)

// movieInfoDocument는 MongoDB에 저장되는 영화 정보 모델입니다
type movieInfoDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Year        int       `bson:"year"`
	Cast        []string  `bson:"cast"`
	ReleaseDate time.Time `bson:"release_date"`
}

func toMovieInfoDocument(info *entity.MovieInfo) *movieInfoDocument {
	return &movieInfoDocument{
		ID:          info.ID,
		Name:        info.Name,
		Year:        info.Year,
		Cast:        info.Cast,
		ReleaseDate: info.ReleaseDate,
	}
}

func (d *movieInfoDocument) toEntity() *entity.MovieInfo {
	return &entity.MovieInfo{
		ID:          d.ID,
		Name:        d.Name,
		Year:        d.Year,
		Cast:        d.Cast,
		ReleaseDate: d.ReleaseDate.UTC(),
	}
}

// NewMovieInfoRepository는 새로운 MongoDB 영화 정보 저장소를 생성합니다
func NewMovieInfoRepository(db *mongo.Database) *MovieInfoRepository {
	return &MovieInfoRepository{
		database:   db,
		collection: db.Collection(MovieInfoCollection),
	}
}

// Save는 id 기준 upsert로 영화 정보를 저장합니다
func (r *MovieInfoRepository) Save(ctx context.Context, info *entity.MovieInfo) (err error) {
	start := time.Now()
	defer func() { recordOperation(ctx, "save", MovieInfoCollection, start, err) }()

	_, err = r.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: info.ID}},
		toMovieInfoDocument(info),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save movie info: %w", err)
	}
	return nil
}

// FindByID는 id로 영화 정보를 조회합니다
func (r *MovieInfoRepository) FindByID(ctx context.Context, id string) (info *entity.MovieInfo, err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, entity.ErrMovieInfoNotFound) {
			recordOperation(ctx, "find", MovieInfoCollection, start, nil)
			return
		}
		recordOperation(ctx, "find", MovieInfoCollection, start, err)
	}()

	var doc movieInfoDocument
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.MovieInfoNotFound(id)
		}
		return nil, fmt.Errorf("failed to find movie info: %w", err)
	}

	return doc.toEntity(), nil
}

// FindAll은 전체 영화 정보를 id 순으로 지연 순회합니다.
// 순회를 시작할 때마다 새 커서를 엽니다
func (r *MovieInfoRepository) FindAll(ctx context.Context) iter.Seq2[*entity.MovieInfo, error] {
	return func(yield func(*entity.MovieInfo, error) bool) {
		start := time.Now()
		opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

		cursor, err := r.collection.Find(ctx, bson.D{}, opts)
		if err != nil {
			recordOperation(ctx, "find_all", MovieInfoCollection, start, err)
			yield(nil, fmt.Errorf("failed to find movie infos: %w", err))
			return
		}
		defer cursor.Close(ctx)

		err = drain(ctx, cursor, func(doc *movieInfoDocument) *entity.MovieInfo { return doc.toEntity() }, yield)
		recordOperation(ctx, "find_all", MovieInfoCollection, start, err)
	}
}

// DeleteByID는 id로 영화 정보를 삭제합니다. 삭제된 문서가 없어도 성공입니다
func (r *MovieInfoRepository) DeleteByID(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { recordOperation(ctx, "delete", MovieInfoCollection, start, err) }()

	if _, err = r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete movie info: %w", err)
	}
	return nil
}

// HealthCheck는 MongoDB 연결 상태를 확인합니다
func (r *MovieInfoRepository) HealthCheck(ctx context.Context) error {
	return ping(ctx, r.database)
}

// drain은 커서의 문서를 디코딩해 yield로 넘깁니다.
// 디코딩이나 커서 에러는 한 번 yield한 뒤 순회를 끝냅니다
func drain[D any, E any](ctx context.Context, cursor *mongo.Cursor, convert func(*D) *E, yield func(*E, error) bool) error {
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			err = fmt.Errorf("failed to decode document: %w", err)
			yield(nil, err)
			return err
		}
		if !yield(convert(&doc), nil) {
			return nil
		}
	}

	if err := cursor.Err(); err != nil {
		err = fmt.Errorf("cursor error: %w", err)
		yield(nil, err)
		return err
	}
	return nil
}
