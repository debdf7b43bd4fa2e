package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/cache"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Handler 聚合所有 HTTP 处理函数
type Handler struct {
	feedService   service.FeedService
	followService service.FollowService
	postService   service.PostService
	userService   service.UserService
	groupService  service.GroupService
	pageCache     cache.PageCache
}

func New(
	feeds service.FeedService,
	follows service.FollowService,
	posts service.PostService,
	users service.UserService,
	groups service.GroupService,
	pageCache cache.PageCache,
) *Handler {
	return &Handler{
		feedService:   feeds,
		followService: follows,
		postService:   posts,
		userService:   users,
		groupService:  groups,
		pageCache:     pageCache,
	}
}

// fail 把服务层错误映射为 HTTP 响应
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
