package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/testutil"
)

func seedBenchUsers(b *testing.B, db *gorm.DB, n int) []*model.User {
	users := make([]*model.User, n)
	for i := range users {
		id := fmt.Sprintf("u%04d", i)
		users[i] = &model.User{ID: id, Username: id, Email: id + "@example.com", Password: "p"}
	}
	if err := db.CreateInBatches(users, 500).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}
	return users
}

func BenchmarkFollowWrite(b *testing.B) {
	db := testutil.NewDB(b)
	follows := NewFollowRepository(db)
	users := seedBenchUsers(b, db, 1000)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rng.Intn(len(users))].ID
		to := users[rng.Intn(len(users))].ID
		if from == to {
			continue
		}
		_ = follows.Create(ctx, from, to)
	}
}

// 读者 u0000 关注 N 个作者，每个作者 10 条帖子
func BenchmarkFollowingFeedPage(b *testing.B) {
	const authors = 500
	db := testutil.NewDB(b)
	follows := NewFollowRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	users := seedBenchUsers(b, db, authors+1)
	reader := users[0]
	rows := make([]*model.Post, 0, authors*10)
	for i, author := range users[1:] {
		if err := follows.Create(ctx, reader.ID, author.ID); err != nil {
			b.Fatalf("follow: %v", err)
		}
		for j := 0; j < 10; j++ {
			rows = append(rows, &model.Post{
				ID:        uuid.NewString(),
				Text:      "bench",
				AuthorID:  author.ID,
				CreatedAt: testutil.Base.Add(time.Duration(i*10+j) * time.Second),
			})
		}
	}
	if err := db.Omit("Author", "Group").CreateInBatches(rows, 500).Error; err != nil {
		b.Fatalf("seed posts: %v", err)
	}

	b.ResetTimer()
	b.Run("ListAuthorIDs", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = follows.ListAuthorIDs(ctx, reader.ID)
		}
	})
	b.Run("CountAndListPage", func(b *testing.B) {
		ids, _ := follows.ListAuthorIDs(ctx, reader.ID)
		for i := 0; i < b.N; i++ {
			_, _ = posts.CountByAuthors(ctx, ids)
			_, _ = posts.ListByAuthors(ctx, ids, 0, 10)
		}
	})
	b.Run("ListAllPage", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = posts.ListAll(ctx, 40, 10)
		}
	})
}
