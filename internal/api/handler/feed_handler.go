package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/paginator"
	"github.com/d60-Lab/yatube/pkg/response"
)

// indexCacheKey 首页按页码分别缓存
func indexCacheKey(number int) string {
	return "index:page=" + strconv.Itoa(number)
}

// pageClamped 请求页超出范围，按实际页码重新取缓存
type pageClamped struct{ number int }

func (e pageClamped) Error() string { return fmt.Sprintf("page clamped to %d", e.number) }

// Index 首页（全部帖子），整页缓存
// @Summary 首页 feed
// @Tags feed
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	body, err := h.indexPage(ctx, paginator.ParseNumber(c.Query("page")))
	var clamped pageClamped
	if errors.As(err, &clamped) {
		body, err = h.indexPage(ctx, clamped.number)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// indexPage 只缓存实际存在的页码，越界请求不会留下缓存项
func (h *Handler) indexPage(ctx context.Context, number int) ([]byte, error) {
	return h.pageCache.GetOrRender(ctx, indexCacheKey(number), func(ctx context.Context) ([]byte, error) {
		page, err := h.feedService.Global(ctx, strconv.Itoa(number))
		if err != nil {
			return nil, err
		}
		if page.Number != number {
			return nil, pageClamped{number: page.Number}
		}
		return json.Marshal(response.Response{Code: 0, Message: "success", Data: page})
	})
}

// GroupPosts 分组 feed
// @Summary 分组 feed
// @Tags feed
// @Produce json
// @Param slug path string true "分组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /group/{slug} [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	feed, err := h.feedService.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, feed)
}

// Profile 作者主页 feed
// @Summary 作者主页
// @Tags feed
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username} [get]
func (h *Handler) Profile(c *gin.Context) {
	feed, err := h.feedService.Profile(c.Request.Context(), c.Param("username"), middleware.CurrentUserID(c), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, feed)
}

// FollowIndex 关注作者的帖子
// @Summary 关注 feed
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /follow [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	page, err := h.feedService.Following(c.Request.Context(), middleware.CurrentUserID(c), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, page)
}
