package service

import (
	"context"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/paginator"
)

// PostPage 一页帖子，按时间倒序
type PostPage = paginator.Page[*model.Post]

// GroupFeed 分组页
type GroupFeed struct {
	Group *model.Group `json:"group"`
	Page  PostPage     `json:"page"`
}

// ProfileFeed 个人主页
type ProfileFeed struct {
	Author    *model.User `json:"author"`
	PostCount int64       `json:"post_count"`
	Followers int64       `json:"followers"`
	Following bool        `json:"following"`
	Page      PostPage    `json:"page"`
}

// FeedService 四种 feed 的组装，只读
type FeedService interface {
	Global(ctx context.Context, page string) (PostPage, error)
	Group(ctx context.Context, slug, page string) (*GroupFeed, error)
	// Profile viewerID 为空表示匿名访问
	Profile(ctx context.Context, username, viewerID, page string) (*ProfileFeed, error)
	Following(ctx context.Context, userID, page string) (PostPage, error)
}

type feedService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	follows  FollowService
	pageSize int
}

func NewFeedService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	follows FollowService,
	pageSize int,
) FeedService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &feedService{posts: posts, groups: groups, users: users, follows: follows, pageSize: pageSize}
}

type countFunc func(ctx context.Context) (int64, error)

type listFunc func(ctx context.Context, offset, limit int) ([]*model.Post, error)

// paginate 先计数再按窗口取数
func (s *feedService) paginate(ctx context.Context, raw string, count countFunc, list listFunc) (PostPage, error) {
	total, err := count(ctx)
	if err != nil {
		return PostPage{}, err
	}
	w := paginator.New(total, s.pageSize).Page(raw)
	items, err := list(ctx, w.Offset, w.Limit)
	if err != nil {
		return PostPage{}, err
	}
	return paginator.WithItems(w, items), nil
}

func (s *feedService) Global(ctx context.Context, page string) (PostPage, error) {
	return s.paginate(ctx, page, s.posts.CountAll, s.posts.ListAll)
}

func (s *feedService) Group(ctx context.Context, slug, page string) (*GroupFeed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "group "+slug)
	}
	res, err := s.paginate(ctx, page,
		func(ctx context.Context) (int64, error) { return s.posts.CountByGroup(ctx, group.ID) },
		func(ctx context.Context, offset, limit int) ([]*model.Post, error) {
			return s.posts.ListByGroup(ctx, group.ID, offset, limit)
		},
	)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: res}, nil
}

func (s *feedService) Profile(ctx context.Context, username, viewerID, page string) (*ProfileFeed, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user "+username)
	}
	res, err := s.paginate(ctx, page,
		func(ctx context.Context) (int64, error) { return s.posts.CountByAuthor(ctx, author.ID) },
		func(ctx context.Context, offset, limit int) ([]*model.Post, error) {
			return s.posts.ListByAuthor(ctx, author.ID, offset, limit)
		},
	)
	if err != nil {
		return nil, err
	}

	followers, err := s.follows.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.IsFollowing(ctx, viewerID, author.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileFeed{
		Author:    author,
		PostCount: res.Total,
		Followers: followers,
		Following: following,
		Page:      res,
	}, nil
}

func (s *feedService) Following(ctx context.Context, userID, page string) (PostPage, error) {
	authors, err := s.follows.AuthorsFollowedBy(ctx, userID)
	if err != nil {
		return PostPage{}, err
	}
	if len(authors) == 0 {
		return paginator.WithItems[*model.Post](paginator.New(0, s.pageSize).Page(page), nil), nil
	}
	return s.paginate(ctx, page,
		func(ctx context.Context) (int64, error) { return s.posts.CountByAuthors(ctx, authors) },
		func(ctx context.Context, offset, limit int) ([]*model.Post, error) {
			return s.posts.ListByAuthors(ctx, authors, offset, limit)
		},
	)
}
