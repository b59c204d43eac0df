package handler

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/config"
	"github.com/inkwell/internal/db"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestAPI(t *testing.T) (*API, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	api := NewAPI(gdb, config.AppConfig{UploadDir: t.TempDir(), UploadURLPath: "/static/uploads"}, zerolog.Nop())

	return api, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) *db.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := db.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hashed),
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func seedArticle(t *testing.T, gdb *gorm.DB, authorID uint, title string) *db.Article {
	t.Helper()

	article := db.Article{
		Title:    title,
		Slug:     fmt.Sprintf("%s-%d", title, time.Now().UnixNano()),
		Content:  "plenty of content for the article body, repeated enough to stay realistic in tests.",
		Excerpt:  "seeded excerpt",
		ReadTime: "1 min read",
		AuthorID: authorID,
		Status:   db.StatusPublished,
	}
	if err := gdb.Create(&article).Error; err != nil {
		t.Fatalf("failed to seed article: %v", err)
	}
	return &article
}

// asActor 模拟认证守卫放进上下文的 actor。
func asActor(c *gin.Context, user *db.User) {
	c.Set(actorContextKey, user)
}
