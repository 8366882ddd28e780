package handler

import (
	"Tideline/internal/pkg/response"
	"Tideline/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
	toggleSvc     service.ToggleService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService, toggleSvc service.ToggleService) *UserFollowHandler {
	return &UserFollowHandler{
		userFollowSvc: userFollowSvc,
		toggleSvc:     toggleSvc,
	}
}

// ToggleFollow 关注/取消关注，返回最新状态与计数
func (s *UserFollowHandler) ToggleFollow(c *gin.Context) {
	userID := c.GetUint64("user_id")

	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.toggleSvc.ToggleFollow(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetFollowState 查询与目标用户的双向关注状态
func (s *UserFollowHandler) GetFollowState(c *gin.Context) {
	userID := c.GetUint64("user_id")

	targetID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	state, err := s.userFollowSvc.GetFollowState(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *UserFollowHandler) GetUserFollowersCount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	count, err := s.userFollowSvc.GetUserFollowerCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}

func (s *UserFollowHandler) GetUserFollowingCount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	count, err := s.userFollowSvc.GetUserFollowingCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}
