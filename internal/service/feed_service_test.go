package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"Tideline/internal/api/config"
	"Tideline/internal/api/dto"
	"Tideline/internal/model"
	"Tideline/internal/pkg/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		DefaultPageSize:    20,
		MaxPageSize:        100,
		OwnContentRatio:    0.3,
		TrendingHours:      24,
		PopularWindowHours: 168,
		TrendingCacheTTL:   300,
	}
}

func makePost(id, userID uint64, createdAt time.Time, likes, comments int) *model.Post {
	return &model.Post{
		ID:            id,
		UserID:        userID,
		Content:       "post content",
		LikesCount:    likes,
		CommentsCount: comments,
		CreatedAt:     createdAt,
		User:          model.User{ID: userID, Username: "user"},
	}
}

func makeVideo(id, userID uint64, createdAt time.Time, likes, comments, views int) *model.Video {
	return &model.Video{
		ID:            id,
		UserID:        userID,
		Title:         "video title",
		VideoURL:      "http://v/v.mp4",
		Status:        model.VideoStatusReady,
		LikesCount:    likes,
		CommentsCount: comments,
		ViewsCount:    views,
		CreatedAt:     createdAt,
		User:          model.User{ID: userID, Username: "user"},
	}
}

func TestGetFeedMergesBothSources(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	postRepo := &fakePostRepo{posts: []*model.Post{
		makePost(1, 1, base.Add(1*time.Minute), 0, 0),
		makePost(2, 1, base.Add(3*time.Minute), 0, 0),
	}}
	videoRepo := &fakeVideoRepo{videos: []*model.Video{
		makeVideo(1, 2, base.Add(2*time.Minute), 0, 0, 0),
	}}

	svc := NewFeedService(postRepo, videoRepo, testFeedConfig())
	page, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{PageSize: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, consts.ContentTypePost, page.Items[0].ContentType)
	assert.Equal(t, uint64(2), page.Items[0].ID)
	assert.Equal(t, consts.ContentTypeVideo, page.Items[1].ContentType)
	assert.Equal(t, uint64(1), page.Items[1].ID)
	assert.Equal(t, consts.ContentTypePost, page.Items[2].ContentType)
	assert.Equal(t, uint64(1), page.Items[2].ID)
	assert.False(t, page.Pagination.HasMore)
	assert.Empty(t, page.Pagination.NextCursor)
	assert.False(t, page.Partial)
}

func TestGetFeedPagination(t *testing.T) {
	base := time.Now().Add(-2 * time.Hour)
	var posts []*model.Post
	for i := uint64(1); i <= 8; i++ {
		posts = append(posts, makePost(i, 1, base.Add(time.Duration(i)*time.Minute), 0, 0))
	}
	svc := NewFeedService(&fakePostRepo{posts: posts}, &fakeVideoRepo{}, testFeedConfig())

	first, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{PageSize: 3})
	require.NoError(t, err)
	require.Len(t, first.Items, 3)
	assert.True(t, first.Pagination.HasMore)
	require.NotEmpty(t, first.Pagination.NextCursor)

	second, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{
		PageSize: 3,
		Cursor:   first.Pagination.NextCursor,
	})
	require.NoError(t, err)
	require.Len(t, second.Items, 3)

	// 两页无重叠且顺序衔接
	seen := map[uint64]struct{}{}
	for _, item := range first.Items {
		seen[item.ID] = struct{}{}
	}
	for _, item := range second.Items {
		_, dup := seen[item.ID]
		assert.False(t, dup, "id %d 出现在两页", item.ID)
	}
	assert.True(t, first.Items[2].CreatedAt.After(second.Items[0].CreatedAt))
}

func TestGetFeedContentTypeFilter(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	svc := NewFeedService(
		&fakePostRepo{posts: []*model.Post{makePost(1, 1, base, 0, 0)}},
		&fakeVideoRepo{videos: []*model.Video{makeVideo(2, 1, base, 0, 0, 0)}},
		testFeedConfig(),
	)

	page, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{ContentType: consts.ContentTypeVideo})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, consts.ContentTypeVideo, page.Items[0].ContentType)

	_, err = svc.GetFeed(context.Background(), &dto.FeedQueryDTO{ContentType: "story"})
	assert.ErrorIs(t, err, ErrContentTypeInvalid)
}

func TestGetFeedInvalidCursor(t *testing.T) {
	svc := NewFeedService(&fakePostRepo{}, &fakeVideoRepo{}, testFeedConfig())
	_, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{Cursor: "@@broken@@"})
	assert.ErrorIs(t, err, ErrCursorInvalid)
}

func TestGetFeedPageSizeClamping(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	var posts []*model.Post
	for i := uint64(1); i <= 150; i++ {
		posts = append(posts, makePost(i, 1, base.Add(time.Duration(i)*time.Second), 0, 0))
	}
	svc := NewFeedService(&fakePostRepo{posts: posts}, &fakeVideoRepo{}, testFeedConfig())

	// 超过上限压到 MaxPageSize
	page, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, page.Items, 100)

	// 非法值回落到 DefaultPageSize
	page, err = svc.GetFeed(context.Background(), &dto.FeedQueryDTO{PageSize: -1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 20)
}

func TestGetFeedPartialDegrade(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	postRepo := &fakePostRepo{posts: []*model.Post{makePost(1, 1, base, 0, 0)}}
	brokenVideos := &fakeVideoRepo{err: errors.New("connection refused")}

	svc := NewFeedService(postRepo, brokenVideos, testFeedConfig())
	page, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{PageSize: 10})
	require.NoError(t, err)
	assert.True(t, page.Partial)
	require.Len(t, page.Items, 1)
	assert.Equal(t, consts.ContentTypePost, page.Items[0].ContentType)
}

func TestGetFeedBothSourcesDown(t *testing.T) {
	svc := NewFeedService(
		&fakePostRepo{err: errors.New("down")},
		&fakeVideoRepo{err: errors.New("down")},
		testFeedConfig(),
	)
	_, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{PageSize: 10})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetFeedSingleSourceDownWhenFiltered(t *testing.T) {
	// 只请求视频而视频源失败时不可降级
	svc := NewFeedService(
		&fakePostRepo{},
		&fakeVideoRepo{err: errors.New("down")},
		testFeedConfig(),
	)
	_, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{
		PageSize:    10,
		ContentType: consts.ContentTypeVideo,
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetFeedEmptyStore(t *testing.T) {
	svc := NewFeedService(&fakePostRepo{}, &fakeVideoRepo{}, testFeedConfig())
	page, err := svc.GetFeed(context.Background(), &dto.FeedQueryDTO{PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.Pagination.HasMore)
	assert.Empty(t, page.Pagination.NextCursor)
}

func TestGetTrendingOrdersByEngagement(t *testing.T) {
	now := time.Now()
	postRepo := &fakePostRepo{posts: []*model.Post{
		makePost(1, 1, now.Add(-2*time.Hour), 1, 0),
		makePost(2, 1, now.Add(-3*time.Hour), 50, 10),
	}}
	videoRepo := &fakeVideoRepo{videos: []*model.Video{
		// (20+5)/100*100 = 25
		makeVideo(3, 2, now.Add(-1*time.Hour), 20, 5, 100),
	}}

	svc := NewFeedService(postRepo, videoRepo, testFeedConfig())
	page, err := svc.GetTrending(context.Background(), 10, 24)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, uint64(2), page.Items[0].ID) // score 60
	assert.Equal(t, uint64(3), page.Items[1].ID) // score 25
	assert.Equal(t, uint64(1), page.Items[2].ID) // score 1
}

func TestGetTrendingWindowExcludesOldContent(t *testing.T) {
	now := time.Now()
	postRepo := &fakePostRepo{posts: []*model.Post{
		makePost(1, 1, now.Add(-2*time.Hour), 10, 0),
		makePost(2, 1, now.Add(-48*time.Hour), 100, 0),
	}}
	svc := NewFeedService(postRepo, &fakeVideoRepo{}, testFeedConfig())

	page, err := svc.GetTrending(context.Background(), 10, 24)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, uint64(1), page.Items[0].ID)
}

func TestPopularItemsLimit(t *testing.T) {
	now := time.Now()
	var posts []*model.Post
	for i := uint64(1); i <= 10; i++ {
		posts = append(posts, makePost(i, 1, now.Add(-time.Duration(i)*time.Hour), int(i), 0))
	}
	svc := NewFeedService(&fakePostRepo{posts: posts}, &fakeVideoRepo{}, testFeedConfig())

	items, err := svc.PopularItems(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	// 热度最高的在前
	assert.Equal(t, uint64(10), items[0].ID)
}
