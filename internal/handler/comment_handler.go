package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Content string `json:"content"`
}

// ListComments 返回文章的全部评论与回复。
func (a *API) ListComments(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	comments, err := a.comments.List(articleID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(comments))
	for i := range comments {
		out = append(out, commentJSON(&comments[i]))
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// AddComment 在文章下新增评论。
func (a *API) AddComment(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	var req commentRequest
	if !bindJSON(c, &req, "Comment content is required") {
		return
	}

	comment, err := a.comments.Add(articleID, currentUser(c).ID, req.Content)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": commentJSON(comment),
	})
}

// UpdateComment 编辑评论内容，仅评论作者可操作。
func (a *API) UpdateComment(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}

	var req commentRequest
	if !bindJSON(c, &req, "Comment content is required") {
		return
	}

	comment, err := a.comments.Update(articleID, commentID, currentUser(c).ID, req.Content)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment updated successfully",
		"comment": commentJSON(comment),
	})
}

// DeleteComment 删除评论及其回复，仅评论作者可操作。
func (a *API) DeleteComment(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}

	if err := a.comments.Delete(articleID, commentID, currentUser(c).ID); err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// AddReply 在评论下新增回复。
func (a *API) AddReply(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}

	var req commentRequest
	if !bindJSON(c, &req, "Reply content is required") {
		return
	}

	reply, err := a.comments.AddReply(articleID, commentID, currentUser(c).ID, req.Content)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply added successfully",
		"reply":   replyJSON(reply),
	})
}

// ToggleCommentLike 翻转当前用户对评论的点赞状态。
func (a *API) ToggleCommentLike(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}

	liked, count, err := a.comments.ToggleLike(articleID, commentID, currentUser(c).ID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	message := "Comment unliked"
	if liked {
		message = "Comment liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"liked":      liked,
		"likesCount": count,
	})
}
