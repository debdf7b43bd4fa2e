package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// FollowService 关注关系
type FollowService interface {
	// Follow 幂等；不能关注自己
	Follow(ctx context.Context, userID, authorUsername string) error
	// Unfollow 关系不存在时为 no-op
	Unfollow(ctx context.Context, userID, authorUsername string) error
	// IsFollowing 匿名或本人始终为 false
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	AuthorsFollowedBy(ctx context.Context, userID string) ([]string, error)
	CountFollowers(ctx context.Context, authorID string) (int64, error)
}

type followService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) FollowService {
	return &followService{follows: follows, users: users}
}

func (s *followService) Follow(ctx context.Context, userID, authorUsername string) error {
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return notFound(err, "user "+authorUsername)
	}
	if author.ID == userID {
		return ErrFollowSelf
	}
	if err := s.follows.Create(ctx, userID, author.ID); err != nil {
		return err
	}
	logger.Info("follow", zap.String("user", userID), zap.String("author", author.ID))
	return nil
}

func (s *followService) Unfollow(ctx context.Context, userID, authorUsername string) error {
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return notFound(err, "user "+authorUsername)
	}
	if err := s.follows.Delete(ctx, userID, author.ID); err != nil {
		return err
	}
	logger.Info("unfollow", zap.String("user", userID), zap.String("author", author.ID))
	return nil
}

func (s *followService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" || userID == authorID {
		return false, nil
	}
	return s.follows.Exists(ctx, userID, authorID)
}

func (s *followService) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	return s.follows.CountFollowers(ctx, authorID)
}

func (s *followService) AuthorsFollowedBy(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.follows.ListAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
