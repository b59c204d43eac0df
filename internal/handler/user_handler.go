package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/service"
)

type updateProfileRequest struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

// GetUser 返回某个用户的公开主页：资料、计数与已发布文章。
func (a *API) GetUser(c *gin.Context) {
	user, err := a.users.GetByUsername(c.Param("username"))
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	counts, err := a.users.Counts(user.ID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	articles, err := a.articles.ListByAuthor(user.ID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	articleViews := make([]gin.H, 0, len(articles))
	for i := range articles {
		articleViews = append(articleViews, gin.H{
			"id":         articles[i].ID,
			"title":      articles[i].Title,
			"slug":       articles[i].Slug,
			"excerpt":    articles[i].Excerpt,
			"coverImage": articles[i].CoverImage,
			"readTime":   articles[i].ReadTime,
			"tags":       articles[i].TagNames,
			"createdAt":  articles[i].CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"name":           user.Name,
		"username":       user.Username,
		"bio":            user.Bio,
		"avatar":         user.Avatar,
		"createdAt":      user.CreatedAt,
		"followersCount": counts.Followers,
		"followingCount": counts.Following,
		"articles":       articleViews,
	})
}

// GetProfile 返回当前用户的完整资料与计数。
func (a *API) GetProfile(c *gin.Context) {
	user := currentUser(c)

	counts, err := a.users.Counts(user.ID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileJSON(user, counts))
}

// UpdateProfile 更新当前用户的资料。
func (a *API) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req, "Invalid profile payload") {
		return
	}

	user, err := a.users.UpdateProfile(currentUser(c).ID, service.ProfileUpdate{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	counts, err := a.users.Counts(user.ID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    profileJSON(user, counts),
	})
}

// ToggleFollow 翻转当前用户对目标用户的关注状态。
func (a *API) ToggleFollow(c *gin.Context) {
	following, count, err := a.users.ToggleFollow(currentUser(c).ID, c.Param("username"))
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	message := "User unfollowed"
	if following {
		message = "User followed"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"following":      following,
		"followersCount": count,
	})
}

// ListBookmarks 返回当前用户收藏的已发布文章，分页。
func (a *API) ListBookmarks(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := a.users.Bookmarks(currentUser(c).ID, page, limit)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":   articleListJSON(result.Articles),
		"pagination": paginationJSON(result.Total, result.Page, result.Limit, result.Pages),
	})
}
