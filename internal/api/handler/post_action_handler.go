package handler

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/pkg/response"
	"Tideline/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	toggleSvc service.ToggleService
}

func NewPostActionHandler(toggleSvc service.ToggleService) *PostActionHandler {
	return &PostActionHandler{toggleSvc: toggleSvc}
}

// ToggleLike 点赞/取消点赞，返回最新状态与计数
func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentType := c.Param("content_type")

	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.toggleSvc.ToggleLike(c.Request.Context(), userID, contentType, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetLikeState 查询当前用户对某内容的点赞状态
func (s *PostActionHandler) GetLikeState(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentType := c.Param("content_type")

	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	liked, err := s.toggleSvc.IsLiked(c.Request.Context(), userID, contentType, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LikeStateDTO{Liked: liked})
}
