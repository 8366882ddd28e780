package service

import (
	"Tideline/internal/api/config"
	"Tideline/internal/api/dto"
	"Tideline/internal/model"
	"Tideline/internal/repository"
	"context"
	log "log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	AlgorithmGraph         = "graph"
	AlgorithmFallbackMixed = "fallback_mixed"
)

// PersonalFeedService 个性化信息流：关注图非空走 graph，
// 否则走自有内容与热门内容按比例混合的兜底算法。
// 每次请求都重新解析关注集合，不持久化任何状态。
type PersonalFeedService interface {
	GetPersonalFeed(ctx context.Context, userID uint64, pageSize int) (*dto.PersonalFeedDTO, error)
}

type personalFeedServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	postRepo       repository.PostRepo
	videoRepo      repository.VideoRepo
	feedSvc        FeedService
	cfg            config.FeedConfig
}

func NewPersonalFeedService(
	userFollowRepo repository.UserFollowRepo,
	postRepo repository.PostRepo,
	videoRepo repository.VideoRepo,
	feedSvc FeedService,
	cfg config.FeedConfig,
) PersonalFeedService {
	return &personalFeedServiceImpl{
		userFollowRepo: userFollowRepo,
		postRepo:       postRepo,
		videoRepo:      videoRepo,
		feedSvc:        feedSvc,
		cfg:            cfg,
	}
}

func (s *personalFeedServiceImpl) GetPersonalFeed(ctx context.Context, userID uint64, pageSize int) (*dto.PersonalFeedDTO, error) {
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	followingIDs, err := s.userFollowRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "resolve following set failed", "err", err)
		return nil, ErrStoreUnavailable
	}

	if len(followingIDs) > 0 {
		return s.graphFeed(ctx, followingIDs, pageSize)
	}
	return s.fallbackFeed(ctx, userID, pageSize)
}

// graphFeed 只取被关注作者的内容，不自动包含调用者自己的内容。
// 页未填满时用热门内容补齐，最终整体按时间重排。
func (s *personalFeedServiceImpl) graphFeed(ctx context.Context, followingIDs []uint64, pageSize int) (*dto.PersonalFeedDTO, error) {
	var (
		posts    []*model.Post
		videos   []*model.Video
		postErr  error
		videoErr error
	)

	fetchSize := pageSize + 1

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, postErr = s.postRepo.ListFeedByAuthors(gctx, followingIDs, nil, fetchSize)
		return nil
	})
	g.Go(func() error {
		videos, videoErr = s.videoRepo.ListFeedByAuthors(gctx, followingIDs, nil, fetchSize)
		return nil
	})
	_ = g.Wait()

	if postErr != nil && videoErr != nil {
		log.ErrorContext(ctx, "graph feed sources failed", "postErr", postErr, "videoErr", videoErr)
		return nil, ErrStoreUnavailable
	}
	partial := postErr != nil || videoErr != nil
	if postErr != nil {
		log.ErrorContext(ctx, "graph feed posts source failed", "err", postErr)
	}
	if videoErr != nil {
		log.ErrorContext(ctx, "graph feed videos source failed", "err", videoErr)
	}

	now := time.Now()
	merged := mergeFeedItems(normalizePosts(posts, now), normalizeVideos(videos, now))
	page, hasMore := truncatePage(merged, pageSize)

	// 关注的内容不足一页时用热门内容补齐，排除已出现的条目
	if len(page) < pageSize {
		popular, popErr := s.feedSvc.PopularItems(ctx, pageSize)
		if popErr != nil {
			log.WarnContext(ctx, "graph feed top-up failed", "err", popErr)
		} else {
			page = fillFromPopular(page, popular, pageSize)
			sortChronological(page)
		}
	}

	return &dto.PersonalFeedDTO{
		Items:          page,
		Partial:        partial,
		FollowingCount: int64(len(followingIDs)),
		Algorithm:      AlgorithmGraph,
		Pagination: dto.PaginationDTO{
			HasMore: hasMore,
		},
	}, nil
}

// fallbackFeed 关注图为空时的发现流：
// own_quota = ceil(page_size * ratio)，其余配额给热门内容，
// 自有内容不足时由热门补足，拼接后按时间重排。
func (s *personalFeedServiceImpl) fallbackFeed(ctx context.Context, userID uint64, pageSize int) (*dto.PersonalFeedDTO, error) {
	ownQuota := int(math.Ceil(float64(pageSize) * s.cfg.OwnContentRatio))
	if ownQuota > pageSize {
		ownQuota = pageSize
	}

	var (
		ownPosts  []*model.Post
		ownVideos []*model.Video
		popular   []*dto.FeedItemDTO
		postErr   error
		videoErr  error
		popErr    error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ownPosts, postErr = s.postRepo.ListFeed(gctx, nil, userID, ownQuota)
		return nil
	})
	g.Go(func() error {
		ownVideos, videoErr = s.videoRepo.ListFeed(gctx, nil, userID, ownQuota)
		return nil
	})
	g.Go(func() error {
		popular, popErr = s.feedSvc.PopularItems(gctx, pageSize)
		return nil
	})
	_ = g.Wait()

	ownFailed := postErr != nil && videoErr != nil
	if ownFailed && popErr != nil {
		log.ErrorContext(ctx, "fallback feed sources failed",
			"postErr", postErr, "videoErr", videoErr, "popErr", popErr)
		return nil, ErrStoreUnavailable
	}
	partial := postErr != nil || videoErr != nil || popErr != nil
	if postErr != nil {
		log.ErrorContext(ctx, "fallback feed own posts failed", "err", postErr)
	}
	if videoErr != nil {
		log.ErrorContext(ctx, "fallback feed own videos failed", "err", videoErr)
	}
	if popErr != nil {
		log.ErrorContext(ctx, "fallback feed popular source failed", "err", popErr)
	}

	now := time.Now()
	own := mergeFeedItems(normalizePosts(ownPosts, now), normalizeVideos(ownVideos, now))
	if len(own) > ownQuota {
		own = own[:ownQuota]
	}

	// 自有内容不足配额时，空位让给热门内容
	items := fillFromPopular(own, popular, pageSize)
	sortChronological(items)

	return &dto.PersonalFeedDTO{
		Items:          items,
		Partial:        partial,
		FollowingCount: 0,
		Algorithm:      AlgorithmFallbackMixed,
		Pagination: dto.PaginationDTO{
			HasMore: pageSize > 0 && len(items) == pageSize,
		},
	}, nil
}

// fillFromPopular 用热门内容补齐到 pageSize，跳过已存在的 (content_type, id)
func fillFromPopular(items []*dto.FeedItemDTO, popular []*dto.FeedItemDTO, pageSize int) []*dto.FeedItemDTO {
	seen := make(map[feedKey]struct{}, len(items))
	for _, item := range items {
		seen[keyOf(item)] = struct{}{}
	}

	for _, item := range popular {
		if len(items) >= pageSize {
			break
		}
		key := keyOf(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, item)
	}
	return items
}
