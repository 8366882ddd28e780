package service

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/pkg/util"
	"sort"
)

// feedKey 去重主键，两种内容的原始 id 空间可能重叠，
// 必须以 (content_type, id) 作为条目的真实主键。
type feedKey struct {
	contentType string
	id          uint64
}

func keyOf(item *dto.FeedItemDTO) feedKey {
	return feedKey{contentType: item.ContentType, id: item.ID}
}

// itemBefore 全序比较 (created_at DESC, id DESC)，时间相同按 id 决胜
func itemBefore(a, b *dto.FeedItemDTO) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// sortChronological 按全序键重排
func sortChronological(items []*dto.FeedItemDTO) {
	sort.SliceStable(items, func(i, j int) bool {
		return itemBefore(items[i], items[j])
	})
}

// mergeFeedItems 合并多个已归一化的内容源：
// 按 (content_type, id) 去重后整体按时间全序排列
func mergeFeedItems(lists ...[]*dto.FeedItemDTO) []*dto.FeedItemDTO {
	total := 0
	for _, list := range lists {
		total += len(list)
	}

	merged := make([]*dto.FeedItemDTO, 0, total)
	seen := make(map[feedKey]struct{}, total)
	for _, list := range lists {
		for _, item := range list {
			if item == nil {
				continue
			}
			key := keyOf(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}
	}

	sortChronological(merged)
	return merged
}

// truncatePage 截取单页并判断是否还有后续页
func truncatePage(items []*dto.FeedItemDTO, pageSize int) ([]*dto.FeedItemDTO, bool) {
	if len(items) <= pageSize {
		return items, false
	}
	return items[:pageSize], true
}

// nextCursorOf 以页内最后一条的排序键生成下一页游标
func nextCursorOf(items []*dto.FeedItemDTO) string {
	if len(items) == 0 {
		return ""
	}
	last := items[len(items)-1]
	return util.EncodeCursor(&util.FeedCursor{CreatedAt: last.CreatedAt, ID: last.ID})
}
