package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/middleware"
	"github.com/xxxsen/afternote/internal/pkg/errcode"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/pkg/response"
)

const maxPageSize = 200

func getUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserIDKey)
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	code, msg := errorCode(err)
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	if code == errcode.ErrInternal {
		logger.Error("request failed")
	} else {
		logger.Debug("request rejected", zap.Int("code", code))
	}
	response.Error(c, code, msg)
}

func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, appErr.ErrUnauthorized):
		return errcode.ErrUnauthorized, "unauthorized"
	case errors.Is(err, appErr.ErrNotFound):
		return errcode.ErrNotFound, "not found"
	case errors.Is(err, appErr.ErrInvalid):
		return errcode.ErrInvalid, "invalid request"
	case errors.Is(err, appErr.ErrUnsupportedType):
		return errcode.ErrUnsupportedType, "unsupported file type"
	case errors.Is(err, appErr.ErrContentUnavailable):
		return errcode.ErrContentUnavailable, "content not available"
	case errors.Is(err, appErr.ErrConflict):
		return errcode.ErrConflict, "conflict"
	case errors.Is(err, appErr.ErrTooLarge):
		return errcode.ErrTooLarge, "file too large"
	default:
		return errcode.ErrInternal, "internal error"
	}
}

func badRequest(c *gin.Context, msg string) {
	response.Error(c, errcode.ErrInvalid, msg)
}

// pageParams reads limit/offset from the query string. A missing or bad
// limit means no limit.
func pageParams(c *gin.Context) (uint, uint) {
	var limit, offset uint
	if value := c.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = uint(min(parsed, maxPageSize))
		}
	}
	if value := c.Query("offset"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			offset = uint(parsed)
		}
	}
	return limit, offset
}
