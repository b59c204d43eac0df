package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/inkwell/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
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

func seedArticle(t *testing.T, gdb *gorm.DB, authorID uint, title, status string) *db.Article {
	t.Helper()

	article := db.Article{
		Title:    title,
		Slug:     GenerateSlug(title),
		Content:  testContent(),
		Excerpt:  "seeded excerpt",
		ReadTime: "1 min read",
		AuthorID: authorID,
		Status:   status,
	}
	if err := gdb.Create(&article).Error; err != nil {
		t.Fatalf("failed to seed article: %v", err)
	}
	return &article
}

func testContent() string {
	content := ""
	for i := 0; i < 30; i++ {
		content += "some words "
	}
	return content
}
