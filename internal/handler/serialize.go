package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown 将 Markdown 渲染为净化后的 HTML。
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

// authorJSON 只暴露作者的展示字段。
func authorJSON(u *db.User) gin.H {
	if u == nil {
		return nil
	}
	return gin.H{
		"id":       u.ID,
		"name":     u.Name,
		"username": u.Username,
		"avatar":   u.Avatar,
	}
}

func articleJSON(a *db.Article, includeContent bool) gin.H {
	payload := gin.H{
		"id":            a.ID,
		"title":         a.Title,
		"slug":          a.Slug,
		"excerpt":       a.Excerpt,
		"coverImage":    a.CoverImage,
		"readTime":      a.ReadTime,
		"tags":          a.TagNames,
		"status":        a.Status,
		"featured":      a.Featured,
		"views":         a.Views,
		"likesCount":    a.LikesCount,
		"commentsCount": a.CommentsCount,
		"createdAt":     a.CreatedAt,
		"updatedAt":     a.UpdatedAt,
	}
	if a.Author != nil {
		payload["author"] = authorJSON(a.Author)
	}
	if includeContent {
		payload["content"] = a.Content
		payload["contentHtml"] = renderMarkdown(a.Content)
	}
	return payload
}

func articleListJSON(articles []db.Article) []gin.H {
	out := make([]gin.H, 0, len(articles))
	for i := range articles {
		out = append(out, articleJSON(&articles[i], false))
	}
	return out
}

func replyJSON(r *db.Reply) gin.H {
	return gin.H{
		"id":         r.ID,
		"content":    r.Content,
		"likesCount": r.LikesCount,
		"createdAt":  r.CreatedAt,
		"user":       authorJSON(r.Author),
	}
}

func commentJSON(cm *db.Comment) gin.H {
	replies := make([]gin.H, 0, len(cm.Replies))
	for i := range cm.Replies {
		replies = append(replies, replyJSON(&cm.Replies[i]))
	}
	return gin.H{
		"id":         cm.ID,
		"content":    cm.Content,
		"likesCount": cm.LikesCount,
		"createdAt":  cm.CreatedAt,
		"user":       authorJSON(cm.Author),
		"replies":    replies,
	}
}

// profileJSON 输出带派生计数的完整个人资料，从不包含密码哈希。
func profileJSON(u *db.User, counts service.RelationCounts) gin.H {
	return gin.H{
		"id":             u.ID,
		"name":           u.Name,
		"username":       u.Username,
		"email":          u.Email,
		"bio":            u.Bio,
		"avatar":         u.Avatar,
		"createdAt":      u.CreatedAt,
		"followersCount": counts.Followers,
		"followingCount": counts.Following,
		"bookmarksCount": counts.Bookmarks,
	}
}
