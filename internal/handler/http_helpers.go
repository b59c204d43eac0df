package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondServiceError 将服务层的哨兵错误映射为对应的状态码，
// 未识别的错误按 500 处理并记录日志，对外只暴露笼统信息。
func (a *API) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotArticleAuthor),
		errors.Is(err, service.ErrNotCommentAuthor):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidTitle),
		errors.Is(err, service.ErrInvalidContent),
		errors.Is(err, service.ErrInvalidExcerpt),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidBio),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrSelfFollow):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		a.log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
	}
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// parseUintParam 解析路径中的数字 id。
// 解析失败按“实体不存在”处理，调用方直接回 404。
func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	return page, limit
}

func paginationJSON(total int64, page, limit, pages int) gin.H {
	return gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": pages,
	}
}
