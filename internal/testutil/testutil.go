// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/pkg/database"
)

// NewDB opens a migrated in-memory sqlite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        database.NowUTC,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Base is the creation time of the first fixture post.
var Base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Password: "p",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateGroup(t testing.TB, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{
		ID:          uuid.NewString(),
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "about " + slug,
	}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePosts creates n posts one minute apart, oldest first.
func CreatePosts(t testing.TB, db *gorm.DB, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	var last model.Post
	_ = db.Order("created_at DESC").Limit(1).Find(&last).Error
	start := Base
	if !last.CreatedAt.IsZero() {
		start = last.CreatedAt.Add(time.Minute)
	}

	posts := make([]*model.Post, n)
	for i := range posts {
		p := &model.Post{
			ID:        uuid.NewString(),
			Text:      fmt.Sprintf("post %s #%d", author.Username, i),
			AuthorID:  author.ID,
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
		}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, db.Create(p).Error)
		posts[i] = p
	}
	return posts
}
