package handler

import (
	"net/http"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/gin-gonic/gin"
)

// MovieInfoHandler는 영화 정보 HTTP 핸들러입니다
type MovieInfoHandler struct {
	movieInfoUC *usecase.MovieInfoUseCase
}

// NewMovieInfoHandler는 새로운 MovieInfoHandler를 생성합니다
func NewMovieInfoHandler(movieInfoUC *usecase.MovieInfoUseCase) *MovieInfoHandler {
	return &MovieInfoHandler{movieInfoUC: movieInfoUC}
}

// Add godoc
// @Summary      Add movie info
// @Tags         movieinfos
// @Accept       json
// @Produce      json
// @Param        request  body      dto.MovieInfo  true  "Movie info"
// @Success      201      {object}  dto.MovieInfo
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /v1/movieinfos [post]
func (h *MovieInfoHandler) Add(c *gin.Context) {
	var req dto.MovieInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.movieInfoUC.Add(c.Request.Context(), req.ToEntity())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMovieInfo(created))
}

// GetAll godoc
// @Summary      List movie infos
// @Tags         movieinfos
// @Produce      json
// @Success      200  {array}   dto.MovieInfo
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /v1/movieinfos [get]
func (h *MovieInfoHandler) GetAll(c *gin.Context) {
	result := make([]*dto.MovieInfo, 0)
	for info, err := range h.movieInfoUC.GetAll(c.Request.Context()) {
		if err != nil {
			respondError(c, err)
			return
		}
		result = append(result, dto.FromMovieInfo(info))
	}

	c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary      Get movie info by ID
// @Tags         movieinfos
// @Produce      json
// @Param        id   path      string  true  "Movie info ID"
// @Success      200  {object}  dto.MovieInfo
// @Failure      404
// @Router       /v1/movieinfos/{id} [get]
func (h *MovieInfoHandler) GetByID(c *gin.Context) {
	info, found, err := h.movieInfoUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovieInfo(info))
}

// Update godoc
// @Summary      Update movie info
// @Tags         movieinfos
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Movie info ID"
// @Param        request  body      dto.MovieInfo  true  "Movie info"
// @Success      200      {object}  dto.MovieInfo
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404
// @Router       /v1/movieinfos/{id} [put]
func (h *MovieInfoHandler) Update(c *gin.Context) {
	var req dto.MovieInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, found, err := h.movieInfoUC.Update(c.Request.Context(), c.Param("id"), req.ToEntity())
	if !found && err == nil {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovieInfo(updated))
}

// Delete godoc
// @Summary      Delete movie info
// @Tags         movieinfos
// @Param        id  path  string  true  "Movie info ID"
// @Success      204
// @Router       /v1/movieinfos/{id} [delete]
func (h *MovieInfoHandler) Delete(c *gin.Context) {
	if err := h.movieInfoUC.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
