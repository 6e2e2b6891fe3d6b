package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

// MovieInfoClient는 movieinfo-service 클라이언트입니다
type MovieInfoClient struct {
	*httpClient
}

// NewMovieInfoClient는 새로운 MovieInfoClient를 생성합니다
func NewMovieInfoClient(cfg Config) *MovieInfoClient {
	return &MovieInfoClient{httpClient: newHTTPClient("movieinfo-service", cfg)}
}

// GetMovieInfo는 id로 영화 정보를 조회합니다. 없거나 응답이 비어 있으면 entity.ErrUpstreamNotFound를 반환합니다
func (c *MovieInfoClient) GetMovieInfo(ctx context.Context, id string) (*entity.MovieInfo, error) {
	var info *dto.MovieInfo
	if err := c.getJSON(ctx, c.baseURL+"/v1/movieinfos/"+url.PathEscape(id), &info); err != nil {
		return nil, err
	}
	if info == nil || info.ID == "" {
		return nil, fmt.Errorf("%s returned no movie info for %q: %w", c.name, id, entity.ErrUpstreamNotFound)
	}
	return info.ToEntity(), nil
}
