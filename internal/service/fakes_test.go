package service

import (
	"context"
	"sort"
	"time"

	"Tideline/internal/model"
	"Tideline/internal/pkg/consts"
	"Tideline/internal/pkg/util"
	"Tideline/internal/repository"

	"gorm.io/gorm"
)

// fakePostRepo 内存帖子仓库，按真实查询语义过滤与排序
type fakePostRepo struct {
	posts []*model.Post
	err   error
}

func (f *fakePostRepo) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.posts {
		if p.ID == id && !p.IsDeleted {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePostRepo) ListFeed(_ context.Context, cursor *util.FeedCursor, authorID uint64, limit int) ([]*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Post
	for _, p := range f.posts {
		if p.IsDeleted {
			continue
		}
		if authorID > 0 && p.UserID != authorID {
			continue
		}
		if !cursorAdmits(cursor, p.CreatedAt, p.ID) {
			continue
		}
		out = append(out, p)
	}
	sortPostsDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) ListFeedByAuthors(_ context.Context, authorIDs []uint64, cursor *util.FeedCursor, limit int) ([]*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	authors := make(map[uint64]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = struct{}{}
	}
	var out []*model.Post
	for _, p := range f.posts {
		if p.IsDeleted {
			continue
		}
		if _, ok := authors[p.UserID]; !ok {
			continue
		}
		if !cursorAdmits(cursor, p.CreatedAt, p.ID) {
			continue
		}
		out = append(out, p)
	}
	sortPostsDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) ListSince(_ context.Context, since time.Time, limit int) ([]*model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Post
	for _, p := range f.posts {
		if p.IsDeleted || p.CreatedAt.Before(since) {
			continue
		}
		out = append(out, p)
	}
	sortPostsDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeVideoRepo 内存视频仓库
type fakeVideoRepo struct {
	videos []*model.Video
	err    error
}

func (f *fakeVideoRepo) GetVideo(_ context.Context, id uint64) (*model.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, v := range f.videos {
		if v.ID == id && !v.IsDeleted {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVideoRepo) ListFeed(_ context.Context, cursor *util.FeedCursor, authorID uint64, limit int) ([]*model.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Video
	for _, v := range f.videos {
		if v.IsDeleted || v.Status != model.VideoStatusReady {
			continue
		}
		if authorID > 0 && v.UserID != authorID {
			continue
		}
		if !cursorAdmits(cursor, v.CreatedAt, v.ID) {
			continue
		}
		out = append(out, v)
	}
	sortVideosDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVideoRepo) ListFeedByAuthors(_ context.Context, authorIDs []uint64, cursor *util.FeedCursor, limit int) ([]*model.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	authors := make(map[uint64]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = struct{}{}
	}
	var out []*model.Video
	for _, v := range f.videos {
		if v.IsDeleted || v.Status != model.VideoStatusReady {
			continue
		}
		if _, ok := authors[v.UserID]; !ok {
			continue
		}
		if !cursorAdmits(cursor, v.CreatedAt, v.ID) {
			continue
		}
		out = append(out, v)
	}
	sortVideosDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVideoRepo) ListSince(_ context.Context, since time.Time, limit int) ([]*model.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Video
	for _, v := range f.videos {
		if v.IsDeleted || v.Status != model.VideoStatusReady || v.CreatedAt.Before(since) {
			continue
		}
		out = append(out, v)
	}
	sortVideosDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVideoRepo) AddViews(_ context.Context, videoID uint64, delta int) error {
	if f.err != nil {
		return f.err
	}
	for _, v := range f.videos {
		if v.ID == videoID {
			v.ViewsCount += delta
		}
	}
	return nil
}

// fakeUserFollowRepo 内存关注关系仓库
type fakeUserFollowRepo struct {
	following map[uint64][]uint64
	err       error
}

func (f *fakeUserFollowRepo) GetFollowingIDs(_ context.Context, userID uint64) ([]uint64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.following[userID], nil
}

func (f *fakeUserFollowRepo) GetUserFollowerCount(_ context.Context, userID uint64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, ids := range f.following {
		for _, id := range ids {
			if id == userID {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeUserFollowRepo) GetUserFollowingCount(_ context.Context, userID uint64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.following[userID])), nil
}

func (f *fakeUserFollowRepo) GetUserFollow(_ context.Context, userID uint64, followingID uint64) (*model.UserFollow, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, id := range f.following[userID] {
		if id == followingID {
			return &model.UserFollow{FollowerID: userID, FollowingID: followingID}, nil
		}
	}
	return nil, nil
}

type likeRel struct {
	userID      uint64
	contentType string
	contentID   uint64
}

// fakeToggleRepo 内存切换仓库，维护点赞/关注状态并重新计数
type fakeToggleRepo struct {
	existingPosts  map[uint64]bool
	existingVideos map[uint64]bool
	existingUsers  map[uint64]bool
	likes          map[likeRel]bool
	follows        map[[2]uint64]bool
	err            error
}

func newFakeToggleRepo() *fakeToggleRepo {
	return &fakeToggleRepo{
		existingPosts:  map[uint64]bool{},
		existingVideos: map[uint64]bool{},
		existingUsers:  map[uint64]bool{},
		likes:          map[likeRel]bool{},
		follows:        map[[2]uint64]bool{},
	}
}

func (f *fakeToggleRepo) ToggleLike(_ context.Context, userID uint64, contentType string, contentID uint64) (*repository.ToggleLikeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	exists := false
	switch contentType {
	case consts.ContentTypePost:
		exists = f.existingPosts[contentID]
	case consts.ContentTypeVideo:
		exists = f.existingVideos[contentID]
	}
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}

	key := likeRel{userID: userID, contentType: contentType, contentID: contentID}
	f.likes[key] = !f.likes[key]

	var likesCount int64
	for k, active := range f.likes {
		if active && k.contentType == contentType && k.contentID == contentID {
			likesCount++
		}
	}
	return &repository.ToggleLikeResult{Active: f.likes[key], LikesCount: likesCount}, nil
}

func (f *fakeToggleRepo) CheckLikeExists(_ context.Context, userID uint64, contentType string, contentID uint64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.likes[likeRel{userID: userID, contentType: contentType, contentID: contentID}], nil
}

func (f *fakeToggleRepo) ToggleFollow(_ context.Context, followerID, followingID uint64) (*repository.ToggleFollowResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.existingUsers[followingID] {
		return nil, gorm.ErrRecordNotFound
	}

	key := [2]uint64{followerID, followingID}
	f.follows[key] = !f.follows[key]

	var followerCount, followingCount int64
	for k, active := range f.follows {
		if !active {
			continue
		}
		if k[1] == followingID {
			followerCount++
		}
		if k[0] == followerID {
			followingCount++
		}
	}
	return &repository.ToggleFollowResult{
		Active:         f.follows[key],
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

func cursorAdmits(cursor *util.FeedCursor, createdAt time.Time, id uint64) bool {
	if cursor == nil {
		return true
	}
	if createdAt.Before(cursor.CreatedAt) {
		return true
	}
	return createdAt.Equal(cursor.CreatedAt) && id < cursor.ID
}

func sortPostsDesc(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

func sortVideosDesc(videos []*model.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		if !videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].CreatedAt.After(videos[j].CreatedAt)
		}
		return videos[i].ID > videos[j].ID
	})
}
