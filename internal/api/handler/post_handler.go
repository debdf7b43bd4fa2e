package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/response"
)

type postRequest struct {
	Text  string  `json:"text" binding:"required"`
	Group *string `json:"group"`
	Image *string `json:"image"`
}

func (r postRequest) input() service.PostInput {
	return service.PostInput{Text: r.Text, GroupID: r.Group, Image: r.Image}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// PostDetail 帖子详情
// @Summary 帖子详情与评论
// @Tags 帖子
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id} [get]
func (h *Handler) PostDetail(c *gin.Context) {
	detail, err := h.postService.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, detail)
}

// CreatePost 发帖，成功后清空页面缓存
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body postRequest true "帖子内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /create [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Create(c.Request.Context(), middleware.CurrentUserID(c), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	h.invalidatePages(c)
	response.Created(c, post)
}

// EditPost 编辑帖子（仅作者），成功后清空页面缓存
// @Summary 编辑帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Param request body postRequest true "帖子内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/edit [post]
func (h *Handler) EditPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	h.invalidatePages(c)
	response.Success(c, post)
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/comment [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.postService.AddComment(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), service.CommentInput{Text: req.Text})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, comment)
}

// invalidatePages 写入已成功，缓存清理失败只记录
func (h *Handler) invalidatePages(c *gin.Context) {
	if err := h.pageCache.InvalidateAll(c.Request.Context()); err != nil {
		logger.Error("page cache invalidation failed", zap.Error(err))
	}
}
