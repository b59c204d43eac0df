package db

import "time"

// 文章状态的两个取值。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article 定义了文章模型。
// 点赞、收藏等集合字段全部以关联表行表达，成员变更是
// 原子的单行插入/删除，而不是整文档读改写。
type Article struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Content    string    `gorm:"not null" json:"content,omitempty"`
	Excerpt    string    `json:"excerpt"`
	CoverImage string    `json:"coverImage"`
	ReadTime   string    `json:"readTime"`
	AuthorID   uint      `gorm:"index;not null" json:"-"`
	Author     *User     `json:"-"`
	Tags       []Tag     `gorm:"many2many:article_tags;" json:"-"`
	Status     string    `gorm:"index;not null;default:published" json:"status"`
	Featured   bool      `json:"featured"`
	Views      int64     `json:"views"`

	// 派生字段，由服务层填充，不落库。
	TagNames      []string `gorm:"-" json:"tags"`
	LikesCount    int64    `gorm:"-" json:"likesCount"`
	CommentsCount int64    `gorm:"-" json:"commentsCount"`
}

// PopulateDerivedFields 将关联数据整理为序列化用的派生字段。
func (a *Article) PopulateDerivedFields() {
	names := make([]string, 0, len(a.Tags))
	for _, tag := range a.Tags {
		names = append(names, tag.Name)
	}
	a.TagNames = names
}

// Tag 定义了标签模型。
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// ArticleLike 记录某个用户对某篇文章的点赞。
type ArticleLike struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	ArticleID uint `gorm:"uniqueIndex:idx_article_likes_pair;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_article_likes_pair;not null"`
}
