package service

import (
	"errors"
	"strings"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("not the comment author")
	ErrEmptyContent     = errors.New("content is required")
)

// CommentService wraps comment and reply operations scoped to one article.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// List returns an article's comments with authors, replies and like counts.
func (s *CommentService) List(articleID uint) ([]db.Comment, error) {
	if err := s.ensureArticle(articleID); err != nil {
		return nil, err
	}

	var comments []db.Comment
	if err := s.db.Preload("Author").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB { return tx.Order("replies.created_at asc") }).
		Preload("Replies.Author").
		Where("article_id = ?", articleID).
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	for i := range comments {
		if err := s.populateLikes(&comments[i]); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

// Add appends a comment to an article and returns it with the author resolved.
func (s *CommentService) Add(articleID, actorID uint, content string) (*db.Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}

	if err := s.ensureArticle(articleID); err != nil {
		return nil, err
	}

	comment := db.Comment{ArticleID: articleID, AuthorID: actorID, Content: trimmed}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update edits a comment's content; only the author may do this.
func (s *CommentService) Update(articleID, commentID, actorID uint, content string) (*db.Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.locate(articleID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}

	if err := s.db.Model(comment).Update("content", trimmed).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Author").First(comment, comment.ID).Error; err != nil {
		return nil, err
	}
	if err := s.populateLikes(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment along with its replies and likes.
func (s *CommentService) Delete(articleID, commentID, actorID uint) error {
	comment, err := s.locate(articleID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return ErrNotCommentAuthor
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var replyIDs []uint
		if err := tx.Model(&db.Reply{}).Where("comment_id = ?", commentID).Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		if len(replyIDs) > 0 {
			if err := tx.Where("reply_id IN ?", replyIDs).Delete(&db.ReplyLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&db.Reply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&db.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Comment{}, commentID).Error
	})
}

// AddReply appends a reply to a comment.
func (s *CommentService) AddReply(articleID, commentID, actorID uint, content string) (*db.Reply, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.locate(articleID, commentID); err != nil {
		return nil, err
	}

	reply := db.Reply{CommentID: commentID, AuthorID: actorID, Content: trimmed}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Author").First(&reply, reply.ID).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ToggleLike flips the actor's membership in the comment's like set.
// 评论点赞与文章点赞互相独立。
func (s *CommentService) ToggleLike(articleID, commentID, actorID uint) (bool, int64, error) {
	if _, err := s.locate(articleID, commentID); err != nil {
		return false, 0, err
	}

	liked, err := toggleMembership(s.db, &db.CommentLike{CommentID: commentID, UserID: actorID},
		"comment_id = ? AND user_id = ?", commentID, actorID)
	if err != nil {
		return false, 0, err
	}

	var count int64
	if err := s.db.Model(&db.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (s *CommentService) ensureArticle(articleID uint) error {
	var count int64
	if err := s.db.Model(&db.Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// locate 在指定文章范围内按 id 查找评论，跨文章的 id 视为不存在。
func (s *CommentService) locate(articleID, commentID uint) (*db.Comment, error) {
	if err := s.ensureArticle(articleID); err != nil {
		return nil, err
	}

	var comment db.Comment
	if err := s.db.Where("id = ? AND article_id = ?", commentID, articleID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) populateLikes(comment *db.Comment) error {
	if err := s.db.Model(&db.CommentLike{}).
		Where("comment_id = ?", comment.ID).
		Count(&comment.LikesCount).Error; err != nil {
		return err
	}
	for i := range comment.Replies {
		if err := s.db.Model(&db.ReplyLike{}).
			Where("reply_id = ?", comment.Replies[i].ID).
			Count(&comment.Replies[i].LikesCount).Error; err != nil {
			return err
		}
	}
	return nil
}
