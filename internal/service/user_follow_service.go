package service

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/pkg/consts"
	"Tideline/internal/pkg/redis"
	"Tideline/internal/repository"
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

const followCountCacheTTL = time.Hour * 1

type UserFollowService interface {
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowState(ctx context.Context, userID, targetID uint64) (*dto.FollowStateDTO, error)
}

type userFollowServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
}

func NewUserFollowService(userFollowRepo repository.UserFollowRepo) UserFollowService {
	return &userFollowServiceImpl{userFollowRepo: userFollowRepo}
}

type fetchCountFunc func(ctx context.Context, userID uint64) (int64, error)

func (s *userFollowServiceImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(
		ctx, userID,
		consts.UserFollowerCountKey,
		s.userFollowRepo.GetUserFollowerCount,
	)
}

func (s *userFollowServiceImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(
		ctx, userID,
		consts.UserFollowingCountKey,
		s.userFollowRepo.GetUserFollowingCount,
	)
}

// GetFollowState 双向查询关注关系，给出是否互关
func (s *userFollowServiceImpl) GetFollowState(ctx context.Context, userID, targetID uint64) (*dto.FollowStateDTO, error) {
	if targetID == 0 {
		return nil, ErrParamInvalid
	}

	state := &dto.FollowStateDTO{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		follow, err := s.userFollowRepo.GetUserFollow(gctx, userID, targetID)
		if err != nil {
			return err
		}
		state.Following = follow != nil
		return nil
	})
	g.Go(func() error {
		follow, err := s.userFollowRepo.GetUserFollow(gctx, targetID, userID)
		if err != nil {
			return err
		}
		state.FollowedBy = follow != nil
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, ErrStoreUnavailable
	}

	state.Mutual = state.Following && state.FollowedBy
	return state, nil
}

func (s *userFollowServiceImpl) getCountCommon(
	ctx context.Context,
	userID uint64,
	keyPrefix string,
	fetchDB fetchCountFunc,
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userID, 10)

	if redis.GetRdbClient() != nil {
		valStr, err := redis.GetValue(ctx, key)
		if err == nil && valStr != "" {
			return strconv.ParseInt(valStr, 10, 64)
		}
	}

	count, err := fetchDB(ctx, userID)
	if err != nil {
		return 0, ErrStoreUnavailable
	}

	if redis.GetRdbClient() != nil {
		_ = redis.SetWithExpiration(ctx, key, count, followCountCacheTTL)
	}
	return count, nil
}
