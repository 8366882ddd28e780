package repository

import (
	"Tideline/internal/model"
	"Tideline/internal/pkg/consts"
	"context"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleLikeResult 点赞切换结果，计数来自关系表重新统计
type ToggleLikeResult struct {
	Active        bool
	LikesCount    int64
	CommentsCount int64
}

// ToggleFollowResult 关注切换结果
type ToggleFollowResult struct {
	Active         bool
	FollowerCount  int64
	FollowingCount int64
}

// ToggleRepo 原子切换：存在性检查、增删关系、重新计数在同一事务内完成。
// 目标行加排他锁，同一目标上的并发切换按到达顺序串行生效。
type ToggleRepo interface {
	ToggleLike(ctx context.Context, userID uint64, contentType string, contentID uint64) (*ToggleLikeResult, error)
	ToggleFollow(ctx context.Context, followerID, followingID uint64) (*ToggleFollowResult, error)
	CheckLikeExists(ctx context.Context, userID uint64, contentType string, contentID uint64) (bool, error)
}

type ToggleRepoImpl struct {
	db *gorm.DB
}

func NewToggleRepo(db *gorm.DB) ToggleRepo {
	return &ToggleRepoImpl{db: db}
}

func (s *ToggleRepoImpl) ToggleLike(ctx context.Context, userID uint64, contentType string, contentID uint64) (*ToggleLikeResult, error) {
	result := &ToggleLikeResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentsCount int64

		// 锁定目标行，不存在则整个事务以 RecordNotFound 结束
		switch contentType {
		case consts.ContentTypePost:
			var post model.Post
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("is_deleted = ?", false).
				First(&post, contentID).Error; err != nil {
				return err
			}
			commentsCount = int64(post.CommentsCount)
		case consts.ContentTypeVideo:
			var video model.Video
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("is_deleted = ?", false).
				First(&video, contentID).Error; err != nil {
				return err
			}
			commentsCount = int64(video.CommentsCount)
		default:
			return errors.Errorf("unknown content type: %s", contentType)
		}

		var exists int64
		if err := tx.Model(&model.Like{}).
			Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
			Count(&exists).Error; err != nil {
			return err
		}

		if exists > 0 {
			if err := tx.
				Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
				Delete(&model.Like{}).Error; err != nil {
				return err
			}
			result.Active = false
		} else {
			like := &model.Like{
				UserID:      userID,
				ContentType: contentType,
				ContentID:   contentID,
				CreatedAt:   time.Now(),
			}
			// 并发插入撞唯一键时说明关系已存在，按已点赞处理
			if err := tx.Create(like).Error; err != nil && !isDuplicateError(err) {
				return err
			}
			result.Active = true
		}

		// 计数永远从关系表重新统计，不做增减修正
		var likesCount int64
		if err := tx.Model(&model.Like{}).
			Where("content_type = ? AND content_id = ?", contentType, contentID).
			Count(&likesCount).Error; err != nil {
			return err
		}

		var target interface{} = &model.Post{}
		if contentType == consts.ContentTypeVideo {
			target = &model.Video{}
		}
		if err := tx.Model(target).
			Where("id = ?", contentID).
			UpdateColumn("likes_count", likesCount).Error; err != nil {
			return err
		}

		result.LikesCount = likesCount
		result.CommentsCount = commentsCount
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(err, "toggle like")
	}

	return result, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func (s *ToggleRepoImpl) CheckLikeExists(ctx context.Context, userID uint64, contentType string, contentID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Count(&count).Error
	return count > 0, err
}

func (s *ToggleRepoImpl) ToggleFollow(ctx context.Context, followerID, followingID uint64) (*ToggleFollowResult, error) {
	result := &ToggleFollowResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_deleted = ?", false).
			First(&target, followingID).Error; err != nil {
			return err
		}

		var exists int64
		if err := tx.Model(&model.UserFollow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&exists).Error; err != nil {
			return err
		}

		if exists > 0 {
			if err := tx.
				Where("follower_id = ? AND following_id = ?", followerID, followingID).
				Delete(&model.UserFollow{}).Error; err != nil {
				return err
			}
			result.Active = false
		} else {
			follow := &model.UserFollow{
				FollowerID:  followerID,
				FollowingID: followingID,
				CreatedAt:   time.Now(),
			}
			if err := tx.Create(follow).Error; err != nil && !isDuplicateError(err) {
				return err
			}
			result.Active = true
		}

		var followerCount int64
		if err := tx.Model(&model.UserFollow{}).
			Where("following_id = ?", followingID).
			Count(&followerCount).Error; err != nil {
			return err
		}

		var followingCount int64
		if err := tx.Model(&model.UserFollow{}).
			Where("follower_id = ?", followerID).
			Count(&followingCount).Error; err != nil {
			return err
		}

		result.FollowerCount = followerCount
		result.FollowingCount = followingCount
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(err, "toggle follow")
	}

	return result, nil
}
