package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/testutil"
	"github.com/d60-Lab/yatube/pkg/auth"
)

const pageSize = 10

type env struct {
	db      *gorm.DB
	feeds   FeedService
	follows FollowService
	posts   PostService
	users   UserService
	groups  GroupService
	events  *recordingPublisher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	pub := &recordingPublisher{}
	follows := NewFollowService(followRepo, userRepo)

	return &env{
		db:      db,
		feeds:   NewFeedService(postRepo, groupRepo, userRepo, follows, pageSize),
		follows: follows,
		posts:   NewPostService(postRepo, groupRepo, commentRepo, pub),
		users:   NewUserService(userRepo, auth.NewTokenManager("test", time.Hour)),
		groups:  NewGroupService(groupRepo),
		events:  pub,
	}
}

type published struct {
	subject string
	postID  string
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, post *model.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{subject: subject, postID: post.ID})
	return p.err
}

func (p *recordingPublisher) Close() {}

func postIDs(posts []*model.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func newUser(t *testing.T, e *env, username string) *model.User {
	t.Helper()
	return testutil.CreateUser(t, e.db, username)
}

func newGroup(t *testing.T, e *env, slug string) *model.Group {
	t.Helper()
	return testutil.CreateGroup(t, e.db, slug)
}

func createPosts(t *testing.T, e *env, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	return testutil.CreatePosts(t, e.db, author, group, n)
}
