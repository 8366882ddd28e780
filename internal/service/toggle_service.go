package service

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/pkg/consts"
	"Tideline/internal/pkg/redis"
	"Tideline/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"
)

const likeCountCacheTTL = time.Hour * 1

// ToggleService 二元关系切换：点赞与关注。
// 切换不是幂等操作，重复调用按设计交替状态。
type ToggleService interface {
	ToggleLike(ctx context.Context, userID uint64, contentType string, contentID uint64) (*dto.ToggleResultDTO, error)
	IsLiked(ctx context.Context, userID uint64, contentType string, contentID uint64) (bool, error)
	ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleResultDTO, error)
}

type toggleServiceImpl struct {
	toggleRepo repository.ToggleRepo
}

func NewToggleService(toggleRepo repository.ToggleRepo) ToggleService {
	return &toggleServiceImpl{toggleRepo: toggleRepo}
}

func (s *toggleServiceImpl) ToggleLike(ctx context.Context, userID uint64, contentType string, contentID uint64) (*dto.ToggleResultDTO, error) {
	if contentType != consts.ContentTypePost && contentType != consts.ContentTypeVideo {
		return nil, ErrContentTypeInvalid
	}
	if contentID == 0 {
		return nil, ErrParamInvalid
	}

	result, err := s.toggleRepo.ToggleLike(ctx, userID, contentType, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		log.ErrorContext(ctx, "toggle like failed", "err", err)
		return nil, ErrStoreUnavailable
	}

	s.cacheLikeCount(ctx, contentType, contentID, result.LikesCount)

	return &dto.ToggleResultDTO{
		Active: result.Active,
		Counts: map[string]int64{
			"likes":    result.LikesCount,
			"comments": result.CommentsCount,
		},
	}, nil
}

func (s *toggleServiceImpl) IsLiked(ctx context.Context, userID uint64, contentType string, contentID uint64) (bool, error) {
	if contentType != consts.ContentTypePost && contentType != consts.ContentTypeVideo {
		return false, ErrContentTypeInvalid
	}
	if userID == 0 {
		return false, nil
	}
	liked, err := s.toggleRepo.CheckLikeExists(ctx, userID, contentType, contentID)
	if err != nil {
		log.ErrorContext(ctx, "check like failed", "err", err)
		return false, ErrStoreUnavailable
	}
	return liked, nil
}

func (s *toggleServiceImpl) ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleResultDTO, error) {
	if followingID == 0 {
		return nil, ErrParamInvalid
	}
	if followerID == followingID {
		return nil, ErrUserFollowSelf
	}

	result, err := s.toggleRepo.ToggleFollow(ctx, followerID, followingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.ErrorContext(ctx, "toggle follow failed", "err", err)
		return nil, ErrStoreUnavailable
	}

	s.invalidateFollowCountCache(ctx, followerID, followingID)

	return &dto.ToggleResultDTO{
		Active: result.Active,
		Counts: map[string]int64{
			"followers": result.FollowerCount,
			"following": result.FollowingCount,
		},
	}, nil
}

// cacheLikeCount 切换后把重新统计的点赞数写穿到缓存
func (s *toggleServiceImpl) cacheLikeCount(ctx context.Context, contentType string, contentID uint64, count int64) {
	if redis.GetRdbClient() == nil {
		return
	}
	key := consts.ContentLikeCountKey + contentType + ":" + strconv.FormatUint(contentID, 10)
	_ = redis.SetWithExpiration(ctx, key, count, likeCountCacheTTL)
}

// invalidateFollowCountCache 关注关系变化后删除计数缓存，读取时回源重建
func (s *toggleServiceImpl) invalidateFollowCountCache(ctx context.Context, followerID, followingID uint64) {
	if redis.GetRdbClient() == nil {
		return
	}
	_ = redis.DeleteKey(ctx, consts.UserFollowerCountKey+strconv.FormatUint(followingID, 10))
	_ = redis.DeleteKey(ctx, consts.UserFollowingCountKey+strconv.FormatUint(followerID, 10))
}
