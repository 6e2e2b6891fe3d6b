package handler

import (
	"net/http"
	"strings"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	apperrors "github.com/YouSangSon/movie-catalog-service/internal/pkg/errors"
	"github.com/gin-gonic/gin"
)

// maxBatchIDs는 한 번에 조합할 수 있는 영화 수입니다
const maxBatchIDs = 50

// MovieHandler는 영화 조합 HTTP 핸들러입니다
type MovieHandler struct {
	movieUC *usecase.MovieUseCase
}

// NewMovieHandler는 새로운 MovieHandler를 생성합니다
func NewMovieHandler(movieUC *usecase.MovieUseCase) *MovieHandler {
	return &MovieHandler{movieUC: movieUC}
}

// GetByID godoc
// @Summary      Retrieve movie with reviews
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie info ID"
// @Success      200  {object}  dto.Movie
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /v1/movies/{id} [get]
func (h *MovieHandler) GetByID(c *gin.Context) {
	movie, err := h.movieUC.RetrieveMovieByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovie(movie))
}

// List godoc
// @Summary      Retrieve several movies with reviews
// @Tags         movies
// @Produce      json
// @Param        ids  query     string  true  "Comma separated movie info IDs"
// @Success      200  {array}   dto.Movie
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /v1/movies [get]
func (h *MovieHandler) List(c *gin.Context) {
	ids := parseIDs(c.Query("ids"))
	if len(ids) == 0 {
		respondError(c, apperrors.New(apperrors.ErrCodeBadRequest, "query parameter ids is required"))
		return
	}
	if len(ids) > maxBatchIDs {
		respondError(c, apperrors.New(apperrors.ErrCodeBadRequest, "too many ids"))
		return
	}

	movies, err := h.movieUC.RetrieveMovies(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]*dto.Movie, 0, len(movies))
	for _, movie := range movies {
		result = append(result, dto.FromMovie(movie))
	}
	c.JSON(http.StatusOK, result)
}

func parseIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
