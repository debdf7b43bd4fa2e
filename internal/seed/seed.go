package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

const batchSize = 500

// Options 演示数据规模
type Options struct {
	Users        int
	Groups       int
	PostsPerUser int
	// FollowsPerUser 每个用户随机关注的作者数
	FollowsPerUser int
	// Password 所有演示账户共用的明文密码
	Password string
	Seed     int64
}

type Result struct {
	Users   int
	Groups  int
	Posts   int
	Follows int
}

// Run 批量写入用户、分组、帖子和关注关系
func Run(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	var res Result
	if opts.Users <= 0 {
		return res, fmt.Errorf("seed: users must be positive, got %d", opts.Users)
	}
	if opts.Password == "" {
		opts.Password = "password123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return res, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	run := uuid.NewString()[:8]

	users := make([]*model.User, opts.Users)
	for i := range users {
		users[i] = &model.User{
			ID:       uuid.NewString(),
			Username: fmt.Sprintf("user_%s_%d", run, i),
			Email:    fmt.Sprintf("user_%s_%d@example.com", run, i),
			Password: string(hash),
		}
	}
	if err := db.WithContext(ctx).CreateInBatches(users, batchSize).Error; err != nil {
		return res, fmt.Errorf("seed users: %w", err)
	}
	res.Users = len(users)

	groups := make([]*model.Group, opts.Groups)
	for i := range groups {
		groups[i] = &model.Group{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("Group %d", i),
			Slug:        fmt.Sprintf("group-%s-%d", run, i),
			Description: "seeded group",
		}
	}
	if len(groups) > 0 {
		if err := db.WithContext(ctx).CreateInBatches(groups, batchSize).Error; err != nil {
			return res, fmt.Errorf("seed groups: %w", err)
		}
	}
	res.Groups = len(groups)

	start := time.Now().UTC().Add(-time.Duration(opts.Users*opts.PostsPerUser) * time.Minute)
	posts := make([]*model.Post, 0, opts.Users*opts.PostsPerUser)
	for i := 0; i < opts.Users*opts.PostsPerUser; i++ {
		author := users[rng.Intn(len(users))]
		p := &model.Post{
			ID:        uuid.NewString(),
			Text:      fmt.Sprintf("Post #%d by %s", i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
		}
		if len(groups) > 0 && rng.Intn(2) == 0 {
			p.GroupID = &groups[rng.Intn(len(groups))].ID
		}
		posts = append(posts, p)
	}
	if len(posts) > 0 {
		if err := db.WithContext(ctx).Omit("Author", "Group").CreateInBatches(posts, batchSize).Error; err != nil {
			return res, fmt.Errorf("seed posts: %w", err)
		}
	}
	res.Posts = len(posts)

	follows := repository.NewFollowRepository(db)
	for _, u := range users {
		for _, idx := range rng.Perm(len(users))[:min(opts.FollowsPerUser, len(users))] {
			author := users[idx]
			if author.ID == u.ID {
				continue
			}
			if err := follows.Create(ctx, u.ID, author.ID); err != nil {
				return res, fmt.Errorf("seed follows: %w", err)
			}
			res.Follows++
		}
	}
	return res, nil
}
