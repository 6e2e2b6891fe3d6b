package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

// Date는 "2006-01-02" 형식으로 직렬화되는 날짜입니다. null이나 빈 문자열은 zero 값입니다
type Date struct {
	time.Time
}

// NewDate는 Date를 만듭니다
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(entity.ReleaseDateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string in YYYY-MM-DD format: %w", err)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(entity.ReleaseDateLayout, raw)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	d.Time = parsed
	return nil
}

// MovieInfo는 영화 정보 요청/응답 DTO입니다
type MovieInfo struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Cast        []string `json:"cast"`
	ReleaseDate Date     `json:"releaseDate"`
}

// ToEntity는 DTO를 엔티티로 변환합니다
func (m *MovieInfo) ToEntity() *entity.MovieInfo {
	return &entity.MovieInfo{
		ID:          m.ID,
		Name:        m.Name,
		Year:        m.Year,
		Cast:        m.Cast,
		ReleaseDate: m.ReleaseDate.Time,
	}
}

// FromMovieInfo는 엔티티를 DTO로 변환합니다
func FromMovieInfo(info *entity.MovieInfo) *MovieInfo {
	cast := info.Cast
	if cast == nil {
		cast = []string{}
	}
	return &MovieInfo{
		ID:          info.ID,
		Name:        info.Name,
		Year:        info.Year,
		Cast:        cast,
		ReleaseDate: NewDate(info.ReleaseDate),
	}
}

// Review는 리뷰 요청/응답 DTO입니다
type Review struct {
	ID          string  `json:"id,omitempty"`
	MovieInfoID string  `json:"movieInfoId"`
	Comment     string  `json:"comment"`
	Rating      float64 `json:"rating"`
}

// ToEntity는 DTO를 엔티티로 변환합니다
func (r *Review) ToEntity() *entity.Review {
	return &entity.Review{
		ID:          r.ID,
		MovieInfoID: r.MovieInfoID,
		Comment:     r.Comment,
		Rating:      r.Rating,
	}
}

// FromReview는 엔티티를 DTO로 변환합니다
func FromReview(review *entity.Review) *Review {
	return &Review{
		ID:          review.ID,
		MovieInfoID: review.MovieInfoID,
		Comment:     review.Comment,
		Rating:      review.Rating,
	}
}

// FromReviews는 엔티티 목록을 DTO 목록으로 변환합니다. 결과는 nil이 아닙니다
func FromReviews(reviews []*entity.Review) []*Review {
	result := make([]*Review, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, FromReview(review))
	}
	return result
}

// Movie는 영화 정보와 리뷰 목록을 합친 응답 DTO입니다
type Movie struct {
	MovieInfo  *MovieInfo `json:"movieInfo"`
	ReviewList []*Review  `json:"reviewList"`
}

// FromMovie는 집계 엔티티를 DTO로 변환합니다
func FromMovie(movie *entity.Movie) *Movie {
	return &Movie{
		MovieInfo:  FromMovieInfo(movie.MovieInfo),
		ReviewList: FromReviews(movie.ReviewList),
	}
}

// ErrorResponse는 에러 응답 DTO입니다
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
