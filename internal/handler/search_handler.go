package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
)

// Search 按类别检索文章、用户与标签。
// type=all 时每类只取前几条且不带分页信息，指定类别时完整分页。
func (a *API) Search(c *gin.Context) {
	page, limit := parsePagination(c)
	searchType := strings.TrimSpace(c.Query("type"))

	result, err := a.search.Search(c.Query("q"), searchType, page, limit)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	payload := gin.H{}
	switch result.Type {
	case service.SearchArticles:
		payload["articles"] = articleListJSON(result.Articles)
	case service.SearchUsers:
		payload["users"] = searchUserListJSON(result.Users)
	case service.SearchTags:
		payload["tags"] = result.Tags
	default:
		payload["articles"] = articleListJSON(result.Articles)
		payload["users"] = searchUserListJSON(result.Users)
		payload["tags"] = result.Tags
		c.JSON(http.StatusOK, payload)
		return
	}

	payload["pagination"] = paginationJSON(result.Total, result.Page, result.Limit, result.Pages)
	c.JSON(http.StatusOK, payload)
}

// ListTags 返回出现次数最多的标签。
func (a *API) ListTags(c *gin.Context) {
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))

	tags, err := a.search.Tags(limit)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func searchUserListJSON(users []db.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, gin.H{
			"id":       users[i].ID,
			"name":     users[i].Name,
			"username": users[i].Username,
			"avatar":   users[i].Avatar,
			"bio":      users[i].Bio,
		})
	}
	return out
}
