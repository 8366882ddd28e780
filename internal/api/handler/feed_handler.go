package handler

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/pkg/response"
	"Tideline/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc         service.FeedService
	personalFeedSvc service.PersonalFeedService
}

func NewFeedHandler(feedSvc service.FeedService, personalFeedSvc service.PersonalFeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc:         feedSvc,
		personalFeedSvc: personalFeedSvc,
	}
}

// GetFeed 公共时间线
func (s *FeedHandler) GetFeed(c *gin.Context) {
	var query dto.FeedQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.feedSvc.GetFeed(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetTrending 热门时间线
func (s *FeedHandler) GetTrending(c *gin.Context) {
	var query dto.TrendingQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.feedSvc.GetTrending(c.Request.Context(), query.PageSize, query.HoursBack)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetPersonalFeed 个性化时间线，需要登录
func (s *FeedHandler) GetPersonalFeed(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.PersonalQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.personalFeedSvc.GetPersonalFeed(c.Request.Context(), userID, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}
