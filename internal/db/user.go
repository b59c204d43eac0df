package db

import "time"

// User 定义了用户模型。密码哈希永远不会被序列化。
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"not null" json:"name"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Bio          string    `json:"bio"`
	Avatar       string    `json:"avatar"`
}

// Follow 以单行记录表达关注关系：一行同时承载
// follower.following 与 followee.followers 两个方向，
// 因此关注对的对称性由结构保证，不存在半写状态。
type Follow struct {
	ID         uint      `gorm:"primarykey"`
	CreatedAt  time.Time
	FollowerID uint `gorm:"uniqueIndex:idx_follows_pair;not null"`
	FolloweeID uint `gorm:"uniqueIndex:idx_follows_pair;not null"`
}

// Bookmark 记录用户收藏的文章。
type Bookmark struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint `gorm:"uniqueIndex:idx_bookmarks_pair;not null"`
	ArticleID uint `gorm:"uniqueIndex:idx_bookmarks_pair;not null"`
}
