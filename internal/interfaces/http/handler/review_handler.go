package handler

import (
	"net/http"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/gin-gonic/gin"
)

// ReviewHandler는 리뷰 HTTP 핸들러입니다
type ReviewHandler struct {
	reviewUC *usecase.ReviewUseCase
}

// NewReviewHandler는 새로운 ReviewHandler를 생성합니다
func NewReviewHandler(reviewUC *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUC: reviewUC}
}

// Add godoc
// @Summary      Add review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request  body      dto.Review  true  "Review"
// @Success      201      {object}  dto.Review
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /v1/reviews [post]
func (h *ReviewHandler) Add(c *gin.Context) {
	var req dto.Review
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.reviewUC.Add(c.Request.Context(), req.ToEntity())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromReview(created))
}

// List godoc
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        movieInfoId  query     string  false  "Movie info ID filter"
// @Success      200          {array}   dto.Review
// @Router       /v1/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var movieInfoID *string
	if value, ok := c.GetQuery("movieInfoId"); ok {
		movieInfoID = &value
	}

	result := make([]*dto.Review, 0)
	for review, err := range h.reviewUC.List(c.Request.Context(), movieInfoID) {
		if err != nil {
			respondError(c, err)
			return
		}
		result = append(result, dto.FromReview(review))
	}

	c.JSON(http.StatusOK, result)
}

// Update godoc
// @Summary      Update review comment and rating
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id       path      string      true  "Review ID"
// @Param        request  body      dto.Review  true  "Review"
// @Success      200      {object}  dto.Review
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /v1/reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	var req dto.Review
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.reviewUC.Update(c.Request.Context(), c.Param("id"), req.ToEntity())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReview(updated))
}

// Delete godoc
// @Summary      Delete review
// @Tags         reviews
// @Param        id  path  string  true  "Review ID"
// @Success      204
// @Router       /v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviewUC.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
