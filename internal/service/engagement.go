package service

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/pkg/consts"
	"sort"
)

// EngagementScore 计算互动热度分。
// 有播放量的视频按互动率折算成百分比，帖子和零播放视频退化为互动总数。
// 两种量纲刻意不做归一化，与既有排行为兼容保留。
func EngagementScore(item *dto.FeedItemDTO) float64 {
	base := float64(item.LikesCount + item.CommentsCount)
	if item.ContentType == consts.ContentTypeVideo && item.ViewsCount > 0 {
		return base / float64(item.ViewsCount) * 100
	}
	return base
}

// sortByEngagement 按 (engagement_score DESC, created_at DESC) 排序
func sortByEngagement(items []*dto.FeedItemDTO) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].EngagementScore != items[j].EngagementScore {
			return items[i].EngagementScore > items[j].EngagementScore
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
