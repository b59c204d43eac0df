package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/inkwell/internal/db"
)

func TestUserServiceToggleFollowKeepsPairSymmetric(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, gdb, "alice")
	bella := seedUser(t, gdb, "bella")
	svc := NewUserService(gdb)

	following, count, err := svc.ToggleFollow(alice.ID, "bella")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !following || count != 1 {
		t.Fatalf("expected following with count 1, got following=%v count=%d", following, count)
	}

	// 一次关注之后两个方向同时成立。
	isFollowing, err := svc.IsFollowing(alice.ID, bella.ID)
	if err != nil || !isFollowing {
		t.Fatalf("expected alice following bella, got %v err=%v", isFollowing, err)
	}
	aliceCounts, err := svc.Counts(alice.ID)
	if err != nil {
		t.Fatalf("counts alice: %v", err)
	}
	bellaCounts, err := svc.Counts(bella.ID)
	if err != nil {
		t.Fatalf("counts bella: %v", err)
	}
	if aliceCounts.Following != 1 || bellaCounts.Followers != 1 {
		t.Fatalf("expected symmetric counts, got alice.following=%d bella.followers=%d",
			aliceCounts.Following, bellaCounts.Followers)
	}

	following, count, err = svc.ToggleFollow(alice.ID, "bella")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if following || count != 0 {
		t.Fatalf("expected unfollowed with count 0, got following=%v count=%d", following, count)
	}

	aliceCounts, _ = svc.Counts(alice.ID)
	bellaCounts, _ = svc.Counts(bella.ID)
	if aliceCounts.Following != 0 || bellaCounts.Followers != 0 {
		t.Fatalf("expected counts back to zero, got alice.following=%d bella.followers=%d",
			aliceCounts.Following, bellaCounts.Followers)
	}
}

func TestUserServiceSelfFollowRejected(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, gdb, "alice")
	svc := NewUserService(gdb)

	if _, _, err := svc.ToggleFollow(alice.ID, "alice"); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}

	var count int64
	gdb.Model(&db.Follow{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no follow rows, got %d", count)
	}
}

func TestUserServiceToggleFollowUnknownTarget(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, gdb, "alice")
	svc := NewUserService(gdb)

	if _, _, err := svc.ToggleFollow(alice.ID, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserServiceToggleBookmark(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	author := seedUser(t, gdb, "jane")
	reader := seedUser(t, gdb, "bob")
	article := seedArticle(t, gdb, author.ID, "Bookmarkable", db.StatusPublished)
	svc := NewUserService(gdb)

	bookmarked, err := svc.ToggleBookmark(reader.ID, article.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !bookmarked {
		t.Fatalf("expected bookmarked")
	}

	bookmarked, err = svc.ToggleBookmark(reader.ID, article.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if bookmarked {
		t.Fatalf("expected bookmark removed")
	}

	if _, err := svc.ToggleBookmark(reader.ID, 9999); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestUserServiceBookmarksListsPublishedOnly(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	author := seedUser(t, gdb, "jane")
	reader := seedUser(t, gdb, "bob")
	published := seedArticle(t, gdb, author.ID, "Published Piece", db.StatusPublished)
	draft := seedArticle(t, gdb, author.ID, "Draft Piece", db.StatusDraft)
	svc := NewUserService(gdb)

	if _, err := svc.ToggleBookmark(reader.ID, published.ID); err != nil {
		t.Fatalf("bookmark published: %v", err)
	}
	if _, err := svc.ToggleBookmark(reader.ID, draft.ID); err != nil {
		t.Fatalf("bookmark draft: %v", err)
	}

	result, err := svc.Bookmarks(reader.ID, 0, 0)
	if err != nil {
		t.Fatalf("bookmarks: %v", err)
	}
	if result.Total != 1 || len(result.Articles) != 1 {
		t.Fatalf("expected only published bookmark, got total=%d len=%d", result.Total, len(result.Articles))
	}
	if result.Articles[0].Title != "Published Piece" {
		t.Fatalf("unexpected article %q", result.Articles[0].Title)
	}
}

func TestUserServiceUpdateProfile(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, gdb, "alice")
	svc := NewUserService(gdb)

	name := "Alice Cooper"
	bio := "writes about Go"
	updated, err := svc.UpdateProfile(alice.ID, ProfileUpdate{Name: &name, Bio: &bio})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != name || updated.Bio != bio {
		t.Fatalf("unexpected profile %+v", updated)
	}
	if updated.Username != "alice" {
		t.Fatalf("expected username untouched, got %q", updated.Username)
	}

	tooLong := strings.Repeat("x", 161)
	if _, err := svc.UpdateProfile(alice.ID, ProfileUpdate{Bio: &tooLong}); !errors.Is(err, ErrInvalidBio) {
		t.Fatalf("expected ErrInvalidBio, got %v", err)
	}
}
