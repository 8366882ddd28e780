package job

import (
	"Tideline/internal/pkg/logger"
	"Tideline/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TrendingJob 定期预热热门候选池，避免缓存过期瞬间全部请求打到数据库
type TrendingJob struct {
	feedSvc service.FeedService
}

func NewTrendingJob(feedSvc service.FeedService) *TrendingJob {
	return &TrendingJob{feedSvc: feedSvc}
}

func (s *TrendingJob) Run() {
	traceID := "job-trending-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.feedSvc.RefreshTrendingCache(ctx); err != nil {
		log.ErrorContext(ctx, "refresh trending cache error", "err", err)
		return
	}

	log.InfoContext(ctx, "refresh trending cache success")
}
