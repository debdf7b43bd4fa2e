package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/response"
)

// ProfileFollow 关注作者（幂等）
// @Summary 关注作者
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param username path string true "作者用户名"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/follow [post]
func (h *Handler) ProfileFollow(c *gin.Context) {
	if err := h.followService.Follow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"following": true})
}

// ProfileUnfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param username path string true "作者用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/unfollow [post]
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	if err := h.followService.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"following": false})
}
