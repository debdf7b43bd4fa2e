package main

import (
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/cache"
	"github.com/d60-Lab/yatube/internal/events"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/auth"
)

// app 组装好的服务层与 HTTP 处理器
type app struct {
	handler *handler.Handler
	users   service.UserService
}

func newApp(cfg *config.Config, db *gorm.DB, pageCache cache.PageCache, publisher events.Publisher) *app {
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	users := service.NewUserService(userRepo, auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL))
	follows := service.NewFollowService(followRepo, userRepo)
	h := handler.New(
		service.NewFeedService(postRepo, groupRepo, userRepo, follows, cfg.Feed.PageSize),
		follows,
		service.NewPostService(postRepo, groupRepo, commentRepo, publisher),
		users,
		service.NewGroupService(groupRepo),
		pageCache,
	)
	return &app{handler: h, users: users}
}
