package repository

import (
	"Tideline/internal/model"
	"Tideline/internal/pkg/util"
	"context"
	"time"

	"gorm.io/gorm"
)

type VideoRepo interface {
	GetVideo(ctx context.Context, id uint64) (*model.Video, error)
	ListFeed(ctx context.Context, cursor *util.FeedCursor, authorID uint64, limit int) ([]*model.Video, error)
	ListFeedByAuthors(ctx context.Context, authorIDs []uint64, cursor *util.FeedCursor, limit int) ([]*model.Video, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]*model.Video, error)
	AddViews(ctx context.Context, videoID uint64, delta int) error
}

type VideoRepoImpl struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepo {
	return &VideoRepoImpl{
		db: db,
	}
}

func (s *VideoRepoImpl) GetVideo(ctx context.Context, id uint64) (*model.Video, error) {
	var video model.Video
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = ?", false).
		First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// ListFeed 按游标谓词取视频候选，仅含转码完成的视频
func (s *VideoRepoImpl) ListFeed(ctx context.Context, cursor *util.FeedCursor, authorID uint64, limit int) ([]*model.Video, error) {
	query := s.feedQuery(ctx, cursor)
	if authorID > 0 {
		query = query.Where("user_id = ?", authorID)
	}

	var videos []*model.Video
	err := query.Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// ListFeedByAuthors 取指定作者集合的视频候选
func (s *VideoRepoImpl) ListFeedByAuthors(ctx context.Context, authorIDs []uint64, cursor *util.FeedCursor, limit int) ([]*model.Video, error) {
	if len(authorIDs) == 0 {
		return []*model.Video{}, nil
	}

	var videos []*model.Video
	err := s.feedQuery(ctx, cursor).
		Where("user_id IN ?", authorIDs).
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// ListSince 取时间窗口内的视频，用于热门计算
func (s *VideoRepoImpl) ListSince(ctx context.Context, since time.Time, limit int) ([]*model.Video, error) {
	var videos []*model.Video
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = ? AND status = ?", false, model.VideoStatusReady).
		Where("created_at >= ?", since).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// AddViews 应用播放事件增量，播放量由播放管道产出，此处只做落库
func (s *VideoRepoImpl) AddViews(ctx context.Context, videoID uint64, delta int) error {
	return s.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", delta)).Error
}

func (s *VideoRepoImpl) feedQuery(ctx context.Context, cursor *util.FeedCursor) *gorm.DB {
	query := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = ? AND status = ?", false, model.VideoStatusReady).
		Order("created_at DESC, id DESC")

	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	return query
}
