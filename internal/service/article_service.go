package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrNotArticleAuthor = errors.New("not the article author")
	ErrInvalidTitle     = errors.New("title must be between 3 and 100 characters")
	ErrInvalidContent   = errors.New("content must be at least 100 characters")
	ErrInvalidExcerpt   = errors.New("excerpt cannot be more than 200 characters")
	ErrInvalidStatus    = errors.New("status must be draft or published")
)

// ArticleService wraps article related database operations.
type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// ArticleInput represents fields accepted when creating an article.
type ArticleInput struct {
	Title      string
	Content    string
	Excerpt    string
	CoverImage string
	Tags       []string
	Status     string
	AuthorID   uint
}

// ArticleUpdate carries the fields of a partial update; nil means untouched.
type ArticleUpdate struct {
	Title      *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Tags       *[]string
	Status     *string
}

// ArticleFilter describes filters for listing published articles.
type ArticleFilter struct {
	Tag      string
	Author   string
	Featured bool
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// ArticleListResult aggregates a page of articles with pagination metadata.
type ArticleListResult struct {
	Articles []db.Article
	Total    int64
	Page     int
	Limit    int
	Pages    int
}

// Create persists a new article, deriving slug, excerpt and read time.
func (s *ArticleService) Create(input ArticleInput) (*db.Article, error) {
	title := strings.TrimSpace(input.Title)
	if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
		return nil, ErrInvalidTitle
	}
	if utf8.RuneCountInString(input.Content) < 100 {
		return nil, ErrInvalidContent
	}

	excerpt := strings.TrimSpace(input.Excerpt)
	if excerpt == "" {
		excerpt = ExcerptFromContent(input.Content)
	}
	if utf8.RuneCountInString(excerpt) > 200 {
		return nil, ErrInvalidExcerpt
	}

	status := input.Status
	if status == "" {
		status = db.StatusPublished
	}
	if status != db.StatusDraft && status != db.StatusPublished {
		return nil, ErrInvalidStatus
	}

	article := db.Article{
		Title:      title,
		Slug:       GenerateSlug(title),
		Content:    input.Content,
		Excerpt:    excerpt,
		CoverImage: strings.TrimSpace(input.CoverImage),
		ReadTime:   CalculateReadTime(input.Content),
		AuthorID:   input.AuthorID,
		Status:     status,
	}

	if err := s.saveWithTags(&article, input.Tags); err != nil {
		return nil, err
	}

	return s.Get(article.ID)
}

// Update applies a partial update after checking ownership.
func (s *ArticleService) Update(id, actorID uint, update ArticleUpdate) (*db.Article, error) {
	var article db.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if article.AuthorID != actorID {
		return nil, ErrNotArticleAuthor
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
			return nil, ErrInvalidTitle
		}
		if title != article.Title {
			article.Title = title
			article.Slug = GenerateSlug(title)
		}
	}
	if update.Content != nil {
		if utf8.RuneCountInString(*update.Content) < 100 {
			return nil, ErrInvalidContent
		}
		article.Content = *update.Content
		article.ReadTime = CalculateReadTime(*update.Content)
	}
	if update.Excerpt != nil {
		excerpt := strings.TrimSpace(*update.Excerpt)
		if excerpt == "" {
			excerpt = ExcerptFromContent(article.Content)
		}
		if utf8.RuneCountInString(excerpt) > 200 {
			return nil, ErrInvalidExcerpt
		}
		article.Excerpt = excerpt
	}
	if update.CoverImage != nil {
		article.CoverImage = strings.TrimSpace(*update.CoverImage)
	}
	if update.Status != nil {
		if *update.Status != db.StatusDraft && *update.Status != db.StatusPublished {
			return nil, ErrInvalidStatus
		}
		article.Status = *update.Status
	}

	var tags []string
	if update.Tags != nil {
		tags = *update.Tags
	} else {
		if err := s.db.Model(&article).Association("Tags").Find(&article.Tags); err != nil {
			return nil, err
		}
		for _, tag := range article.Tags {
			tags = append(tags, tag.Name)
		}
	}

	if err := s.saveWithTags(&article, tags); err != nil {
		return nil, err
	}

	return s.Get(article.ID)
}

// Delete removes an article and everything it owns after checking ownership.
func (s *ArticleService) Delete(id, actorID uint) error {
	var article db.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	if article.AuthorID != actorID {
		return ErrNotArticleAuthor
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&db.Comment{}).Where("article_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			var replyIDs []uint
			if err := tx.Model(&db.Reply{}).Where("comment_id IN ?", commentIDs).Pluck("id", &replyIDs).Error; err != nil {
				return err
			}
			if len(replyIDs) > 0 {
				if err := tx.Where("reply_id IN ?", replyIDs).Delete(&db.ReplyLike{}).Error; err != nil {
					return err
				}
				if err := tx.Where("comment_id IN ?", commentIDs).Delete(&db.Reply{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&db.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("article_id = ?", id).Delete(&db.ArticleLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&db.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&article).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&db.Article{}, id).Error
	})
}

// Get fetches an article by id with author and tags preloaded.
func (s *ArticleService) Get(id uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Author").Preload("Tags").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if err := s.populateEngagement(&article); err != nil {
		return nil, err
	}
	return &article, nil
}

// View atomically increments the view counter and returns the article.
// 计数使用 views = views + 1，而不是读改写，并发访问不会丢失计数。
func (s *ArticleService) View(id uint) (*db.Article, error) {
	result := s.db.Model(&db.Article{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrArticleNotFound
	}
	return s.Get(id)
}

// List provides paginated published articles matching the filter.
func (s *ArticleService) List(filter ArticleFilter) (*ArticleListResult, error) {
	result := &ArticleListResult{Page: filter.Page, Limit: filter.Limit}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.Limit <= 0 {
		result.Limit = 10
	}

	countQuery := s.applyFilters(s.db.Model(&db.Article{}), filter)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.Limit

	var articles []db.Article
	dataQuery := s.applyFilters(s.db.Model(&db.Article{}).Preload("Author").Preload("Tags"), filter)
	if err := dataQuery.Order(orderClause(filter.Sort)).
		Limit(result.Limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	for i := range articles {
		if err := s.populateEngagement(&articles[i]); err != nil {
			return nil, err
		}
	}

	result.Pages = int((result.Total + int64(result.Limit) - 1) / int64(result.Limit))
	result.Articles = articles
	return result, nil
}

// ToggleLike flips the actor's membership in the article's like set and
// reports the new state plus the derived count.
func (s *ArticleService) ToggleLike(articleID, actorID uint) (bool, int64, error) {
	var article db.Article
	if err := s.db.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrArticleNotFound
		}
		return false, 0, err
	}

	liked, err := toggleMembership(s.db, &db.ArticleLike{ArticleID: articleID, UserID: actorID},
		"article_id = ? AND user_id = ?", articleID, actorID)
	if err != nil {
		return false, 0, err
	}

	var count int64
	if err := s.db.Model(&db.ArticleLike{}).Where("article_id = ?", articleID).Count(&count).Error; err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// ListByAuthor returns an author's published articles, newest first.
func (s *ArticleService) ListByAuthor(authorID uint) ([]db.Article, error) {
	var articles []db.Article
	if err := s.db.Preload("Tags").
		Where("author_id = ? AND status = ?", authorID, db.StatusPublished).
		Order("created_at desc").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	for i := range articles {
		articles[i].PopulateDerivedFields()
	}
	return articles, nil
}

func (s *ArticleService) saveWithTags(article *db.Article, tagNames []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}

		tags := make([]db.Tag, 0, len(tagNames))
		seen := make(map[string]bool, len(tagNames))
		for _, name := range tagNames {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" || seen[strings.ToLower(trimmed)] {
				continue
			}
			seen[strings.ToLower(trimmed)] = true

			var tag db.Tag
			if err := tx.Where("name = ?", trimmed).FirstOrCreate(&tag, db.Tag{Name: trimmed}).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}

		return tx.Model(article).Association("Tags").Replace(tags)
	})
}

func (s *ArticleService) applyFilters(query *gorm.DB, filter ArticleFilter) *gorm.DB {
	query = query.Where("articles.status = ?", db.StatusPublished)

	if filter.Tag != "" {
		subQuery := s.db.Model(&db.Article{}).
			Select("articles.id").
			Joins("JOIN article_tags ON articles.id = article_tags.article_id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
		query = query.Where("articles.id IN (?)", subQuery)
	}

	if filter.Author != "" {
		subQuery := s.db.Model(&db.User{}).Select("id").Where("username = ?", filter.Author)
		query = query.Where("articles.author_id IN (?)", subQuery)
	}

	if filter.Featured {
		query = query.Where("articles.featured = ?", true)
	}

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(articles.title) LIKE ? OR LOWER(articles.excerpt) LIKE ? OR LOWER(articles.content) LIKE ?",
			search, search, search)
	}

	return query
}

func (s *ArticleService) populateEngagement(article *db.Article) error {
	return populateArticleEngagement(s.db, article)
}

// populateArticleEngagement 填充点赞数、评论数与标签名等派生字段。
func populateArticleEngagement(gdb *gorm.DB, article *db.Article) error {
	if err := gdb.Model(&db.ArticleLike{}).
		Where("article_id = ?", article.ID).
		Count(&article.LikesCount).Error; err != nil {
		return err
	}
	if err := gdb.Model(&db.Comment{}).
		Where("article_id = ?", article.ID).
		Count(&article.CommentsCount).Error; err != nil {
		return err
	}
	article.PopulateDerivedFields()
	return nil
}

func orderClause(sort string) string {
	switch sort {
	case "createdAt", "oldest":
		return "articles.created_at asc"
	case "-views", "views":
		return "articles.views desc, articles.created_at desc"
	case "-likes", "likes":
		return "(SELECT COUNT(*) FROM article_likes WHERE article_likes.article_id = articles.id) desc, articles.created_at desc"
	default:
		return "articles.created_at desc"
	}
}

// toggleMembership 在一个事务里完成集合成员翻转：
// 先尝试删除，删不到再插入。返回翻转后的成员状态。
func toggleMembership[T any](gdb *gorm.DB, record *T, cond string, args ...interface{}) (bool, error) {
	added := false
	err := gdb.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(cond, args...).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			added = true
			return tx.Create(record).Error
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}
