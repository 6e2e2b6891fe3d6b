package upstream

import (
	"context"
	"errors"
	"net/url"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

// ReviewClient는 review-service 클라이언트입니다
type ReviewClient struct {
	*httpClient
}

// NewReviewClient는 새로운 ReviewClient를 생성합니다
func NewReviewClient(cfg Config) *ReviewClient {
	return &ReviewClient{httpClient: newHTTPClient("review-service", cfg)}
}

// ListReviews는 영화 정보 id에 달린 리뷰를 응답 순서대로 모두 가져옵니다.
// 리뷰 서비스의 404, 410과 빈 본문은 빈 목록으로 취급합니다
func (c *ReviewClient) ListReviews(ctx context.Context, movieInfoID string) ([]*entity.Review, error) {
	query := url.Values{}
	query.Set("movieInfoId", movieInfoID)

	var reviews []*dto.Review
	err := c.getJSON(ctx, c.baseURL+"/v1/reviews?"+query.Encode(), &reviews)
	if errors.Is(err, entity.ErrUpstreamNotFound) {
		return []*entity.Review{}, nil
	}
	if err != nil {
		return nil, err
	}

	result := make([]*entity.Review, 0, len(reviews))
	for _, review := range reviews {
		if review == nil {
			continue
		}
		result = append(result, review.ToEntity())
	}
	return result, nil
}
