package service

import (
	"Tideline/internal/api/config"
	"Tideline/internal/api/dto"
	"Tideline/internal/model"
	"Tideline/internal/pkg/consts"
	"Tideline/internal/pkg/redis"
	"Tideline/internal/pkg/util"
	"Tideline/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// TrendingPoolSize 热门候选池大小，分页在池内截取
const TrendingPoolSize = 100

type FeedService interface {
	GetFeed(ctx context.Context, query *dto.FeedQueryDTO) (*dto.FeedPageDTO, error)
	GetTrending(ctx context.Context, pageSize, hoursBack int) (*dto.FeedPageDTO, error)
	PopularItems(ctx context.Context, limit int) ([]*dto.FeedItemDTO, error)
	RefreshTrendingCache(ctx context.Context) error
}

type feedServiceImpl struct {
	postRepo  repository.PostRepo
	videoRepo repository.VideoRepo
	cfg       config.FeedConfig
}

func NewFeedService(postRepo repository.PostRepo, videoRepo repository.VideoRepo, cfg config.FeedConfig) FeedService {
	return &feedServiceImpl{
		postRepo:  postRepo,
		videoRepo: videoRepo,
		cfg:       cfg,
	}
}

// GetFeed 公共时间线：两个内容源并发取候选，归一化后按全序键合并分页。
// 单一内容源失败时降级返回存活源并标记 partial。
func (s *feedServiceImpl) GetFeed(ctx context.Context, query *dto.FeedQueryDTO) (*dto.FeedPageDTO, error) {
	pageSize := s.clampPageSize(query.PageSize)

	if query.ContentType != "" &&
		query.ContentType != consts.ContentTypePost &&
		query.ContentType != consts.ContentTypeVideo {
		return nil, ErrContentTypeInvalid
	}

	cursor, err := util.DecodeCursor(query.Cursor)
	if err != nil {
		return nil, ErrCursorInvalid
	}

	includePosts := query.ContentType != consts.ContentTypeVideo
	includeVideos := query.ContentType != consts.ContentTypePost

	var (
		posts    []*model.Post
		videos   []*model.Video
		postErr  error
		videoErr error
	)

	// 每个源多取一条用于判断是否还有后续页
	fetchSize := pageSize + 1

	g, gctx := errgroup.WithContext(ctx)
	if includePosts {
		g.Go(func() error {
			posts, postErr = s.postRepo.ListFeed(gctx, cursor, query.AuthorID, fetchSize)
			return nil
		})
	}
	if includeVideos {
		g.Go(func() error {
			videos, videoErr = s.videoRepo.ListFeed(gctx, cursor, query.AuthorID, fetchSize)
			return nil
		})
	}
	_ = g.Wait()

	partial := false
	if postErr != nil {
		log.ErrorContext(ctx, "feed posts source failed", "err", postErr)
		if !includeVideos || videoErr != nil {
			return nil, ErrStoreUnavailable
		}
		partial = true
	}
	if videoErr != nil {
		log.ErrorContext(ctx, "feed videos source failed", "err", videoErr)
		if !includePosts || postErr != nil {
			return nil, ErrStoreUnavailable
		}
		partial = true
	}

	now := time.Now()
	merged := mergeFeedItems(normalizePosts(posts, now), normalizeVideos(videos, now))

	page, hasMore := truncatePage(merged, pageSize)

	result := &dto.FeedPageDTO{
		Items:   page,
		Partial: partial,
		Pagination: dto.PaginationDTO{
			HasMore: hasMore,
		},
	}
	if hasMore {
		result.Pagination.NextCursor = nextCursorOf(page)
	}
	return result, nil
}

// GetTrending 热门信息流：时间窗口内候选按热度分排序。
// 默认窗口的候选池缓存于 Redis，由定时任务预热。
func (s *feedServiceImpl) GetTrending(ctx context.Context, pageSize, hoursBack int) (*dto.FeedPageDTO, error) {
	pageSize = s.clampPageSize(pageSize)
	if hoursBack <= 0 {
		hoursBack = s.cfg.TrendingHours
	}

	pool, err := s.trendingPool(ctx, hoursBack)
	if err != nil {
		return nil, err
	}

	page, hasMore := truncatePage(pool, pageSize)
	return &dto.FeedPageDTO{
		Items: page,
		Pagination: dto.PaginationDTO{
			HasMore: hasMore,
		},
	}, nil
}

// PopularItems 个性化兜底用的热门内容，取配置窗口内热度最高的若干条
func (s *feedServiceImpl) PopularItems(ctx context.Context, limit int) ([]*dto.FeedItemDTO, error) {
	pool, err := s.computeTrending(ctx, s.cfg.PopularWindowHours)
	if err != nil {
		return nil, err
	}
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

// RefreshTrendingCache 预热默认窗口的热门候选池，由定时任务调用
func (s *feedServiceImpl) RefreshTrendingCache(ctx context.Context) error {
	pool, err := s.computeTrending(ctx, s.cfg.TrendingHours)
	if err != nil {
		return err
	}
	return s.storeTrendingCache(ctx, s.cfg.TrendingHours, pool)
}

func (s *feedServiceImpl) trendingPool(ctx context.Context, hoursBack int) ([]*dto.FeedItemDTO, error) {
	key := consts.FeedTrendingKey + strconv.Itoa(hoursBack)

	if rdb := redis.GetRdbClient(); rdb != nil {
		cached, err := redis.GetValue(ctx, key)
		if err == nil && cached != "" {
			var pool []*dto.FeedItemDTO
			if err = json.Unmarshal([]byte(cached), &pool); err == nil {
				return pool, nil
			}
			log.WarnContext(ctx, "trending cache corrupted", "err", err)
		}
	}

	pool, err := s.computeTrending(ctx, hoursBack)
	if err != nil {
		return nil, err
	}
	_ = s.storeTrendingCache(ctx, hoursBack, pool)
	return pool, nil
}

func (s *feedServiceImpl) storeTrendingCache(ctx context.Context, hoursBack int, pool []*dto.FeedItemDTO) error {
	if redis.GetRdbClient() == nil {
		return nil
	}
	key := consts.FeedTrendingKey + strconv.Itoa(hoursBack)
	b, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, key, string(b), time.Duration(s.cfg.TrendingCacheTTL)*time.Second)
}

// computeTrending 统计窗口内的候选并按 (engagement_score DESC, created_at DESC) 排序
func (s *feedServiceImpl) computeTrending(ctx context.Context, hoursBack int) ([]*dto.FeedItemDTO, error) {
	since := time.Now().Add(-time.Duration(hoursBack) * time.Hour)

	var (
		posts    []*model.Post
		videos   []*model.Video
		postErr  error
		videoErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, postErr = s.postRepo.ListSince(gctx, since, TrendingPoolSize*2)
		return nil
	})
	g.Go(func() error {
		videos, videoErr = s.videoRepo.ListSince(gctx, since, TrendingPoolSize*2)
		return nil
	})
	_ = g.Wait()

	if postErr != nil && videoErr != nil {
		log.ErrorContext(ctx, "trending sources failed", "postErr", postErr, "videoErr", videoErr)
		return nil, ErrStoreUnavailable
	}
	if postErr != nil {
		log.ErrorContext(ctx, "trending posts source failed", "err", postErr)
	}
	if videoErr != nil {
		log.ErrorContext(ctx, "trending videos source failed", "err", videoErr)
	}

	now := time.Now()
	pool := mergeFeedItems(normalizePosts(posts, now), normalizeVideos(videos, now))
	sortByEngagement(pool)

	if len(pool) > TrendingPoolSize {
		pool = pool[:TrendingPoolSize]
	}
	return pool, nil
}

func (s *feedServiceImpl) clampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		return s.cfg.MaxPageSize
	}
	return pageSize
}

func normalizePosts(posts []*model.Post, now time.Time) []*dto.FeedItemDTO {
	items := make([]*dto.FeedItemDTO, 0, len(posts))
	for _, post := range posts {
		if item := NormalizePost(post, now); item != nil {
			items = append(items, item)
		}
	}
	return items
}

func normalizeVideos(videos []*model.Video, now time.Time) []*dto.FeedItemDTO {
	items := make([]*dto.FeedItemDTO, 0, len(videos))
	for _, video := range videos {
		if item := NormalizeVideo(video, now); item != nil {
			items = append(items, item)
		}
	}
	return items
}
