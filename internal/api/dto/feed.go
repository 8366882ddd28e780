package dto

import "time"

// FeedItemDTO 统一信息流条目，帖子与视频归一化后的形态
type FeedItemDTO struct {
	ID          uint64 `json:"id"`
	ContentType string `json:"content_type"`

	AuthorID        uint64 `json:"author_id"`
	AuthorUsername  string `json:"author_username"`
	AuthorNickname  string `json:"author_nickname"`
	AuthorAvatarURL string `json:"author_avatar_url"`

	Title string `json:"title"`
	Body  string `json:"body"`

	MediaURL     *string `json:"media_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Duration     *int    `json:"duration,omitempty"`  // 秒，仅视频
	FileSize     *int64  `json:"file_size,omitempty"` // 字节，仅视频
	Format       *string `json:"format,omitempty"`    // 仅视频

	ViewsCount    int `json:"views_count"`
	LikesCount    int `json:"likes_count"`
	CommentsCount int `json:"comments_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AgeSeconds      int64   `json:"age_seconds"`
	RecencyCategory string  `json:"recency_category"`
	EngagementScore float64 `json:"engagement_score"`
}

// PaginationDTO 游标分页信息
type PaginationDTO struct {
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// FeedPageDTO 信息流单页，Partial 表示某一内容源降级缺失
type FeedPageDTO struct {
	Items      []*FeedItemDTO `json:"items"`
	Pagination PaginationDTO  `json:"pagination"`
	Partial    bool           `json:"partial"`
}

// PersonalFeedDTO 个性化信息流，附带算法选择信息
type PersonalFeedDTO struct {
	Items          []*FeedItemDTO `json:"items"`
	Pagination     PaginationDTO  `json:"pagination"`
	Partial        bool           `json:"partial"`
	FollowingCount int64          `json:"following_count"`
	Algorithm      string         `json:"algorithm"`
}

// FeedQueryDTO 公共信息流查询参数
type FeedQueryDTO struct {
	PageSize    int    `form:"page_size"`
	Cursor      string `form:"cursor"`
	ContentType string `form:"content_type"`
	AuthorID    uint64 `form:"author_id"`
}

// TrendingQueryDTO 热门信息流查询参数
type TrendingQueryDTO struct {
	PageSize  int `form:"page_size"`
	HoursBack int `form:"hours_back"`
}

// PersonalQueryDTO 个性化信息流查询参数
type PersonalQueryDTO struct {
	PageSize int `form:"page_size"`
}
