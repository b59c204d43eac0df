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

func getWithParams(t *testing.T, handlerFn gin.HandlerFunc, path string, params gin.Params, actor *db.User) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	c.Params = params
	if actor != nil {
		asActor(c, actor)
	}

	handlerFn(c)
	return w
}

func TestGetArticleIncrementsViews(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")
	article := seedArticle(t, api.DB(), author.ID, "views-article")

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", article.ID)}}
	first := getWithParams(t, api.GetArticle, "/api/articles/1", params, nil)
	second := getWithParams(t, api.GetArticle, "/api/articles/1", params, nil)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200 for both, got %d and %d", first.Code, second.Code)
	}

	var body struct {
		Views int64 `json:"views"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Views != 2 {
		t.Fatalf("expected 2 views after two reads, got %d", body.Views)
	}
	if !strings.Contains(second.Body.String(), "contentHtml") {
		t.Fatalf("expected rendered contentHtml in detail view, got %s", second.Body.String())
	}
}

func TestGetArticleMalformedIDIsNotFound(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	w := getWithParams(t, api.GetArticle, "/api/articles/abc", gin.Params{{Key: "id", Value: "abc"}}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", w.Code)
	}

	w = getWithParams(t, api.GetArticle, "/api/articles/999", gin.Params{{Key: "id", Value: "999"}}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing article, got %d", w.Code)
	}
}

func TestCreateArticleDerivesFields(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	payload := fmt.Sprintf(`{"title":"Go and Gin","content":%q,"tags":["go"]}`,
		strings.Repeat("words in the body ", 20))
	c.Request = httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	asActor(c, author)

	api.CreateArticle(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Article struct {
			Slug     string   `json:"slug"`
			ReadTime string   `json:"readTime"`
			Tags     []string `json:"tags"`
		} `json:"article"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !strings.HasPrefix(body.Article.Slug, "go-and-gin-") {
		t.Fatalf("expected derived slug, got %q", body.Article.Slug)
	}
	if body.Article.ReadTime != "1 min read" {
		t.Fatalf("expected derived read time, got %q", body.Article.ReadTime)
	}
	if len(body.Article.Tags) != 1 || body.Article.Tags[0] != "go" {
		t.Fatalf("expected tags [go], got %v", body.Article.Tags)
	}
}

func TestToggleArticleLikeRoundTrip(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")
	reader := seedUser(t, api.DB(), "reader")
	article := seedArticle(t, api.DB(), author.ID, "likeable")

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", article.ID)}}

	w := getWithParams(t, api.ToggleArticleLike, "/api/articles/1/like", params, reader)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Message    string `json:"message"`
		Liked      bool   `json:"liked"`
		LikesCount int64  `json:"likesCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Liked || body.LikesCount != 1 || body.Message != "Article liked" {
		t.Fatalf("unexpected like response: %+v", body)
	}

	w = getWithParams(t, api.ToggleArticleLike, "/api/articles/1/like", params, reader)
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Liked || body.LikesCount != 0 || body.Message != "Article unliked" {
		t.Fatalf("unexpected unlike response: %+v", body)
	}
}

func TestDeleteArticleRequiresAuthor(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	author := seedUser(t, api.DB(), "author")
	other := seedUser(t, api.DB(), "other")
	article := seedArticle(t, api.DB(), author.ID, "guarded")

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", article.ID)}}

	w := getWithParams(t, api.DeleteArticle, "/api/articles/1", params, other)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", w.Code)
	}

	w = getWithParams(t, api.DeleteArticle, "/api/articles/1", params, author)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for author, got %d: %s", w.Code, w.Body.String())
	}
}
