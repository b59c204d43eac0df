package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
)

func postCommentJSON(t *testing.T, handlerFn gin.HandlerFunc, params gin.Params, actor *db.User, content string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/articles/1/comments",
		strings.NewReader(fmt.Sprintf(`{"content":%q}`, content)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	asActor(c, actor)

	handlerFn(c)
	return w
}

func TestAddCommentResolvesAuthor(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")
	reader := seedUser(t, api.DB(), "reader")
	article := seedArticle(t, api.DB(), author.ID, "commented")

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", article.ID)}}
	w := postCommentJSON(t, api.AddComment, params, reader, "great read")

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Comment struct {
			Content string `json:"content"`
			User    struct {
				Username string `json:"username"`
			} `json:"user"`
		} `json:"comment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Comment.Content != "great read" {
		t.Fatalf("expected comment content, got %q", body.Comment.Content)
	}
	if body.Comment.User.Username != "reader" {
		t.Fatalf("expected resolved author, got %q", body.Comment.User.Username)
	}
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")
	article := seedArticle(t, api.DB(), author.ID, "commented")

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", article.ID)}}
	w := postCommentJSON(t, api.AddComment, params, author, "   ")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank comment, got %d", w.Code)
	}
}

func TestDeleteCommentScopedToArticle(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")
	first := seedArticle(t, api.DB(), author.ID, "first")
	second := seedArticle(t, api.DB(), author.ID, "second")

	comment := db.Comment{ArticleID: first.ID, AuthorID: author.ID, Content: "on first"}
	if err := api.DB().Create(&comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}

	// 评论 id 属于另一篇文章时按不存在处理
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/articles/2/comments/1", nil)
	c.Params = gin.Params{
		{Key: "id", Value: fmt.Sprintf("%d", second.ID)},
		{Key: "commentId", Value: fmt.Sprintf("%d", comment.ID)},
	}
	asActor(c, author)
	api.DeleteComment(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrong article, got %d", w.Code)
	}

	var count int64
	if err := api.DB().Model(&db.Comment{}).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected comment untouched, got %d rows", count)
	}
}

func TestToggleCommentLike(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")
	article := seedArticle(t, api.DB(), author.ID, "liked")

	comment := db.Comment{ArticleID: article.ID, AuthorID: author.ID, Content: "likeable"}
	if err := api.DB().Create(&comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}

	params := gin.Params{
		{Key: "id", Value: fmt.Sprintf("%d", article.ID)},
		{Key: "commentId", Value: fmt.Sprintf("%d", comment.ID)},
	}
	w := getWithParams(t, api.ToggleCommentLike, "/api/articles/1/comments/1/like", params, author)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Liked      bool  `json:"liked"`
		LikesCount int64 `json:"likesCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Liked || body.LikesCount != 1 {
		t.Fatalf("unexpected like response: %+v", body)
	}
}
