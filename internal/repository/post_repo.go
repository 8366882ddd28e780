package repository

import (
	"Tideline/internal/model"
	"Tideline/internal/pkg/util"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	ListFeed(ctx context.Context, cursor *util.FeedCursor, authorID uint64, limit int) ([]*model.Post, error)
	ListFeedByAuthors(ctx context.Context, authorIDs []uint64, cursor *util.FeedCursor, limit int) ([]*model.Post, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = ?", false).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListFeed 按游标谓词取帖子候选，authorID 为 0 时不过滤作者
func (s *PostRepoImpl) ListFeed(ctx context.Context, cursor *util.FeedCursor, authorID uint64, limit int) ([]*model.Post, error) {
	query := s.feedQuery(ctx, cursor)
	if authorID > 0 {
		query = query.Where("user_id = ?", authorID)
	}

	var posts []*model.Post
	err := query.Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListFeedByAuthors 取指定作者集合的帖子候选
func (s *PostRepoImpl) ListFeedByAuthors(ctx context.Context, authorIDs []uint64, cursor *util.FeedCursor, limit int) ([]*model.Post, error) {
	if len(authorIDs) == 0 {
		return []*model.Post{}, nil
	}

	var posts []*model.Post
	err := s.feedQuery(ctx, cursor).
		Where("user_id IN ?", authorIDs).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListSince 取时间窗口内的帖子，用于热门计算
func (s *PostRepoImpl) ListSince(ctx context.Context, since time.Time, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = ?", false).
		Where("created_at >= ?", since).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) feedQuery(ctx context.Context, cursor *util.FeedCursor) *gorm.DB {
	query := s.db.WithContext(ctx).Preload("User").
		Where("is_deleted = ?", false).
		Order("created_at DESC, id DESC")

	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	return query
}
