package service

import (
	"testing"
	"time"

	"Tideline/internal/api/dto"
	"Tideline/internal/pkg/consts"
	"Tideline/internal/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedItem(contentType string, id uint64, createdAt time.Time) *dto.FeedItemDTO {
	return &dto.FeedItemDTO{ID: id, ContentType: contentType, CreatedAt: createdAt}
}

func TestMergeFeedItemsOrder(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	posts := []*dto.FeedItemDTO{
		feedItem(consts.ContentTypePost, 3, base.Add(3*time.Minute)),
		feedItem(consts.ContentTypePost, 1, base.Add(1*time.Minute)),
	}
	videos := []*dto.FeedItemDTO{
		feedItem(consts.ContentTypeVideo, 2, base.Add(2*time.Minute)),
		feedItem(consts.ContentTypeVideo, 4, base.Add(4*time.Minute)),
	}

	merged := mergeFeedItems(posts, videos)
	require.Len(t, merged, 4)
	assert.Equal(t, uint64(4), merged[0].ID)
	assert.Equal(t, uint64(3), merged[1].ID)
	assert.Equal(t, uint64(2), merged[2].ID)
	assert.Equal(t, uint64(1), merged[3].ID)
}

func TestMergeFeedItemsTieBreakByID(t *testing.T) {
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	items := mergeFeedItems([]*dto.FeedItemDTO{
		feedItem(consts.ContentTypePost, 5, ts),
		feedItem(consts.ContentTypePost, 9, ts),
		feedItem(consts.ContentTypePost, 7, ts),
	})
	require.Len(t, items, 3)
	assert.Equal(t, uint64(9), items[0].ID)
	assert.Equal(t, uint64(7), items[1].ID)
	assert.Equal(t, uint64(5), items[2].ID)

	// 同一时间的帖子与视频按 id 决胜，与内容类型无关
	mixed := mergeFeedItems(
		[]*dto.FeedItemDTO{feedItem(consts.ContentTypePost, 3, ts)},
		[]*dto.FeedItemDTO{feedItem(consts.ContentTypeVideo, 8, ts)},
	)
	require.Len(t, mixed, 2)
	assert.Equal(t, consts.ContentTypeVideo, mixed[0].ContentType)
	assert.Equal(t, uint64(8), mixed[0].ID)
}

func TestMergeFeedItemsDedupe(t *testing.T) {
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// 同 id 不同内容类型是两条不同内容
	merged := mergeFeedItems(
		[]*dto.FeedItemDTO{feedItem(consts.ContentTypePost, 1, ts), feedItem(consts.ContentTypePost, 1, ts)},
		[]*dto.FeedItemDTO{feedItem(consts.ContentTypeVideo, 1, ts)},
	)
	assert.Len(t, merged, 2)

	// nil 条目被丢弃
	merged = mergeFeedItems([]*dto.FeedItemDTO{nil, feedItem(consts.ContentTypePost, 2, ts)})
	assert.Len(t, merged, 1)
}

func TestTruncatePage(t *testing.T) {
	ts := time.Now()
	items := []*dto.FeedItemDTO{
		feedItem(consts.ContentTypePost, 3, ts),
		feedItem(consts.ContentTypePost, 2, ts),
		feedItem(consts.ContentTypePost, 1, ts),
	}

	page, hasMore := truncatePage(items, 2)
	assert.Len(t, page, 2)
	assert.True(t, hasMore)

	page, hasMore = truncatePage(items, 3)
	assert.Len(t, page, 3)
	assert.False(t, hasMore)

	page, hasMore = truncatePage(nil, 5)
	assert.Empty(t, page)
	assert.False(t, hasMore)
}

func TestNextCursorOf(t *testing.T) {
	assert.Equal(t, "", nextCursorOf(nil))

	ts := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	items := []*dto.FeedItemDTO{
		feedItem(consts.ContentTypePost, 8, ts.Add(time.Minute)),
		feedItem(consts.ContentTypeVideo, 6, ts),
	}
	encoded := nextCursorOf(items)
	require.NotEmpty(t, encoded)

	cursor, err := util.DecodeCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), cursor.ID)
	assert.True(t, ts.Equal(cursor.CreatedAt))
}
