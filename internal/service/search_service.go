package service

import (
	"errors"
	"strings"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var ErrEmptyQuery = errors.New("search query is required")

// Search result categories.
const (
	SearchAll      = "all"
	SearchArticles = "articles"
	SearchUsers    = "users"
	SearchTags     = "tags"
)

// 类别搜索未显式分页时的截断上限。
const (
	mixedArticleLimit = 5
	mixedUserLimit    = 5
	mixedTagLimit     = 10
)

// SearchService runs substring searches across articles, users and tags.
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a SearchService instance.
func NewSearchService(gdb *gorm.DB) *SearchService {
	return &SearchService{db: gdb}
}

// TagCount pairs a tag name with its published-article occurrence count.
type TagCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// SearchResult holds per-category hits. Pagination metadata is only
// meaningful when a single category was requested.
type SearchResult struct {
	Type     string
	Articles []db.Article
	Users    []db.User
	Tags     []TagCount
	Total    int64
	Page     int
	Limit    int
	Pages    int
}

// Search matches the query case-insensitively as a substring. type=all caps
// each category without pagination; a specific type paginates fully.
func (s *SearchService) Search(query, searchType string, page, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	switch searchType {
	case SearchArticles, SearchUsers, SearchTags:
	default:
		// 未知类别按 all 处理，响应形状保持一致。
		searchType = SearchAll
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	result := &SearchResult{Type: searchType, Page: page, Limit: limit}
	offset := (page - 1) * limit

	if searchType == SearchAll || searchType == SearchArticles {
		articleQuery := s.articleQuery(query)
		skip, take := 0, mixedArticleLimit
		if searchType == SearchArticles {
			skip, take = offset, limit
			if err := s.articleQuery(query).Count(&result.Total).Error; err != nil {
				return nil, err
			}
		}

		var articles []db.Article
		if err := articleQuery.Preload("Author").Preload("Tags").
			Order("articles.created_at desc").
			Offset(skip).Limit(take).
			Find(&articles).Error; err != nil {
			return nil, err
		}
		for i := range articles {
			if err := populateArticleEngagement(s.db, &articles[i]); err != nil {
				return nil, err
			}
		}
		result.Articles = articles
	}

	if searchType == SearchAll || searchType == SearchUsers {
		userQuery := s.userQuery(query)
		skip, take := 0, mixedUserLimit
		if searchType == SearchUsers {
			skip, take = offset, limit
			if err := s.userQuery(query).Count(&result.Total).Error; err != nil {
				return nil, err
			}
		}

		var users []db.User
		if err := userQuery.Order("created_at desc").
			Offset(skip).Limit(take).
			Find(&users).Error; err != nil {
			return nil, err
		}
		result.Users = users
	}

	if searchType == SearchAll || searchType == SearchTags {
		skip, take := 0, mixedTagLimit
		if searchType == SearchTags {
			skip, take = offset, limit
			var distinct int64
			if err := s.tagQuery(query).Distinct("tags.name").Count(&distinct).Error; err != nil {
				return nil, err
			}
			result.Total = distinct
		}

		tags := make([]TagCount, 0)
		if err := s.tagQuery(query).
			Select("tags.name as name, count(articles.id) as count").
			Group("tags.name").
			Order("count desc").
			Offset(skip).Limit(take).
			Scan(&tags).Error; err != nil {
			return nil, err
		}
		result.Tags = tags
	}

	if searchType != SearchAll {
		result.Pages = int((result.Total + int64(limit) - 1) / int64(limit))
	}
	return result, nil
}

// Tags aggregates tags over published articles, top-N by occurrence count.
func (s *SearchService) Tags(limit int) ([]TagCount, error) {
	if limit <= 0 {
		limit = 20
	}

	tags := make([]TagCount, 0)
	if err := s.db.Model(&db.Tag{}).
		Select("tags.name as name, count(articles.id) as count").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Joins("JOIN articles ON articles.id = article_tags.article_id").
		Where("articles.status = ?", db.StatusPublished).
		Group("tags.name").
		Order("count desc").
		Limit(limit).
		Scan(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *SearchService) articleQuery(query string) *gorm.DB {
	like := "%" + strings.ToLower(query) + "%"
	tagSub := s.db.Model(&db.Article{}).
		Select("articles.id").
		Joins("JOIN article_tags ON articles.id = article_tags.article_id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("LOWER(tags.name) LIKE ?", like)

	return s.db.Model(&db.Article{}).
		Where("articles.status = ?", db.StatusPublished).
		Where(
			s.db.Where("LOWER(articles.title) LIKE ?", like).
				Or("LOWER(articles.excerpt) LIKE ?", like).
				Or("LOWER(articles.content) LIKE ?", like).
				Or("articles.id IN (?)", tagSub),
		)
}

func (s *SearchService) userQuery(query string) *gorm.DB {
	like := "%" + strings.ToLower(query) + "%"
	return s.db.Model(&db.User{}).
		Where("LOWER(name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(bio) LIKE ?", like, like, like)
}

func (s *SearchService) tagQuery(query string) *gorm.DB {
	like := "%" + strings.ToLower(query) + "%"
	return s.db.Model(&db.Tag{}).
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Joins("JOIN articles ON articles.id = article_tags.article_id").
		Where("articles.status = ? AND LOWER(tags.name) LIKE ?", db.StatusPublished, like)
}
