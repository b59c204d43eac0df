package db

import "time"

// Comment 定义了文章评论。评论归属文章，没有独立生命周期。
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ArticleID uint      `gorm:"index;not null" json:"articleId"`
	AuthorID  uint      `gorm:"index;not null" json:"-"`
	Author    *User     `json:"-"`
	Content   string    `gorm:"not null" json:"content"`
	Replies   []Reply   `json:"-"`

	LikesCount int64 `gorm:"-" json:"likesCount"`
}

// CommentLike 记录某个用户对某条评论的点赞，与文章点赞互不影响。
type CommentLike struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	CommentID uint `gorm:"uniqueIndex:idx_comment_likes_pair;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_comment_likes_pair;not null"`
}

// Reply 定义了评论的回复。
type Reply struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	CommentID uint      `gorm:"index;not null" json:"commentId"`
	AuthorID  uint      `gorm:"index;not null" json:"-"`
	Author    *User     `json:"-"`
	Content   string    `gorm:"not null" json:"content"`

	LikesCount int64 `gorm:"-" json:"likesCount"`
}

// ReplyLike 记录某个用户对某条回复的点赞。
type ReplyLike struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	ReplyID   uint `gorm:"uniqueIndex:idx_reply_likes_pair;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_reply_likes_pair;not null"`
}
