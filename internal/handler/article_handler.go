package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/service"
)

type createArticleRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	CoverImage string   `json:"coverImage"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status"`
}

type updateArticleRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Excerpt    *string   `json:"excerpt"`
	CoverImage *string   `json:"coverImage"`
	Tags       *[]string `json:"tags"`
	Status     *string   `json:"status"`
}

// ListArticles 返回已发布文章的分页列表。
func (a *API) ListArticles(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := service.ArticleFilter{
		Tag:      strings.TrimSpace(c.Query("tag")),
		Author:   strings.TrimSpace(c.Query("author")),
		Featured: c.Query("featured") == "true",
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     strings.TrimSpace(c.Query("sort")),
		Page:     page,
		Limit:    limit,
	}

	result, err := a.articles.List(filter)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":   articleListJSON(result.Articles),
		"pagination": paginationJSON(result.Total, result.Page, result.Limit, result.Pages),
	})
}

// CreateArticle 新建文章，作者为当前用户。
func (a *API) CreateArticle(c *gin.Context) {
	var req createArticleRequest
	if !bindJSON(c, &req, "Title and content are required") {
		return
	}

	article, err := a.articles.Create(service.ArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Status:     req.Status,
		AuthorID:   currentUser(c).ID,
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Article created successfully",
		"article": articleJSON(article, true),
	})
}

// GetArticle 返回单篇文章并附带渲染后的 HTML，访问会累加浏览数。
func (a *API) GetArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	article, err := a.articles.View(id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleJSON(article, true))
}

// UpdateArticle 更新文章，仅作者可操作。
func (a *API) UpdateArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	var req updateArticleRequest
	if !bindJSON(c, &req, "Invalid article payload") {
		return
	}

	article, err := a.articles.Update(id, currentUser(c).ID, service.ArticleUpdate{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Status:     req.Status,
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Article updated successfully",
		"article": articleJSON(article, true),
	})
}

// DeleteArticle 删除文章及其全部评论、回复与点赞，仅作者可操作。
func (a *API) DeleteArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	if err := a.articles.Delete(id, currentUser(c).ID); err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

// ToggleArticleLike 翻转当前用户对文章的点赞状态。
func (a *API) ToggleArticleLike(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	liked, count, err := a.articles.ToggleLike(id, currentUser(c).ID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	message := "Article unliked"
	if liked {
		message = "Article liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"liked":      liked,
		"likesCount": count,
	})
}

// ToggleBookmark 翻转当前用户对文章的收藏状态。
func (a *API) ToggleBookmark(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	bookmarked, err := a.users.ToggleBookmark(currentUser(c).ID, id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	message := "Article removed from bookmarks"
	if bookmarked {
		message = "Article bookmarked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"bookmarked": bookmarked,
	})
}
