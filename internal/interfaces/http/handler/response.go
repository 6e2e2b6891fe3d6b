package handler

import (
	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	apperrors "github.com/YouSangSon/movie-catalog-service/internal/pkg/errors"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError는 도메인 에러를 상태 코드와 {"error","message"} 본문으로 변환합니다. details는 있을 때만 씁니다
func respondError(c *gin.Context, err error) {
	appErr := apperrors.FromDomain(err)
	switch {
	case apperrors.Is(appErr, apperrors.ErrCodeCircuitOpen):
		_ = c.Error(err)
		logger.Warn(c.Request.Context(), "request rejected by open circuit",
			logger.ErrorCode(string(appErr.Code)),
			zap.Error(err),
		)
	case appErr.HTTPStatus >= 500:
		_ = c.Error(err)
		logger.Error(c.Request.Context(), "request failed",
			logger.ErrorCode(string(appErr.Code)),
			zap.Error(err),
		)
	}

	c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
		Error:   string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// respondBindError는 요청 본문을 해석할 수 없을 때 400을 반환합니다
func respondBindError(c *gin.Context, err error) {
	logger.Info(c.Request.Context(), "invalid request body", zap.Error(err))
	appErr := apperrors.Wrap(err, apperrors.ErrCodeBadRequest, err.Error())
	c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
		Error:   string(appErr.Code),
		Message: appErr.Message,
	})
}
