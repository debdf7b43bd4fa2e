package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// ListGroups 全部分组
// @Summary 分组列表
// @Tags 分组
// @Produce json
// @Success 200 {object} response.Response
// @Router /groups [get]
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, groups)
}

// CreateGroup 创建分组
// @Summary 创建分组
// @Tags 分组
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.GroupInput true "分组信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /groups [post]
func (h *Handler) CreateGroup(c *gin.Context) {
	var req service.GroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	group, err := h.groupService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, group)
}
