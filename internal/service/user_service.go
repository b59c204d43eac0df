package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSelfFollow = errors.New("you cannot follow yourself")
	ErrInvalidBio = errors.New("bio cannot be more than 160 characters")
)

// UserService wraps profile, follow and bookmark operations.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// RelationCounts carry the derived counters shown on profiles.
type RelationCounts struct {
	Followers int64
	Following int64
	Bookmarks int64
}

// ProfileUpdate carries updatable profile fields; nil means untouched.
type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// GetByUsername resolves a username to the stored record.
func (s *UserService) GetByUsername(username string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Counts computes follower, following and bookmark counts for a user.
func (s *UserService) Counts(userID uint) (RelationCounts, error) {
	var counts RelationCounts
	if err := s.db.Model(&db.Follow{}).Where("followee_id = ?", userID).
		Count(&counts.Followers).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&db.Follow{}).Where("follower_id = ?", userID).
		Count(&counts.Following).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&db.Bookmark{}).Where("user_id = ?", userID).
		Count(&counts.Bookmarks).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// UpdateProfile applies a partial update to the actor's own profile.
func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrMissingFields
		}
		user.Name = name
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		if utf8.RuneCountInString(bio) > 160 {
			return nil, ErrInvalidBio
		}
		user.Bio = bio
	}
	if update.Avatar != nil {
		user.Avatar = strings.TrimSpace(*update.Avatar)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleFollow flips whether the actor follows the named user and reports
// the new state plus the target's follower count.
// 关注关系是一行 Follow 记录，插入/删除都是原子的，
// 不存在 following 与 followers 不一致的中间状态。
func (s *UserService) ToggleFollow(actorID uint, targetUsername string) (bool, int64, error) {
	target, err := s.GetByUsername(targetUsername)
	if err != nil {
		return false, 0, err
	}

	if target.ID == actorID {
		return false, 0, ErrSelfFollow
	}

	following, err := toggleMembership(s.db, &db.Follow{FollowerID: actorID, FolloweeID: target.ID},
		"follower_id = ? AND followee_id = ?", actorID, target.ID)
	if err != nil {
		return false, 0, err
	}

	var count int64
	if err := s.db.Model(&db.Follow{}).Where("followee_id = ?", target.ID).Count(&count).Error; err != nil {
		return false, 0, err
	}
	return following, count, nil
}

// IsFollowing reports whether actor currently follows target.
func (s *UserService) IsFollowing(actorID, targetID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&db.Follow{}).
		Where("follower_id = ? AND followee_id = ?", actorID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleBookmark flips the actor's bookmark on an article.
func (s *UserService) ToggleBookmark(actorID, articleID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&db.Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrArticleNotFound
	}

	return toggleMembership(s.db, &db.Bookmark{UserID: actorID, ArticleID: articleID},
		"user_id = ? AND article_id = ?", actorID, articleID)
}

// Bookmarks returns the actor's bookmarked published articles, newest first.
func (s *UserService) Bookmarks(actorID uint, page, limit int) (*ArticleListResult, error) {
	result := &ArticleListResult{Page: page, Limit: limit}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.Limit <= 0 {
		result.Limit = 10
	}

	base := s.db.Model(&db.Article{}).
		Joins("JOIN bookmarks ON bookmarks.article_id = articles.id").
		Where("bookmarks.user_id = ? AND articles.status = ?", actorID, db.StatusPublished)

	if err := base.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.Limit

	var articles []db.Article
	if err := s.db.Model(&db.Article{}).
		Preload("Author").
		Preload("Tags").
		Joins("JOIN bookmarks ON bookmarks.article_id = articles.id").
		Where("bookmarks.user_id = ? AND articles.status = ?", actorID, db.StatusPublished).
		Order("articles.created_at desc").
		Limit(result.Limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	for i := range articles {
		if err := populateArticleEngagement(s.db, &articles[i]); err != nil {
			return nil, err
		}
	}

	result.Pages = int((result.Total + int64(result.Limit) - 1) / int64(result.Limit))
	result.Articles = articles
	return result, nil
}
