package kafka

import (
	"Tideline/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ViewsHandler 消费播放记录的 Canal 变更，把播放量增量落到 videos 表
type ViewsHandler struct {
	videoRepo repository.VideoRepo
}

func NewViewsHandler(videoRepo repository.VideoRepo) *ViewsHandler {
	return &ViewsHandler{videoRepo: videoRepo}
}

func (s *ViewsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("video view consumer setup")
	return nil
}

func (s *ViewsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("video view consumer cleanup")
	return nil
}

func (s *ViewsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-video-view consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-video-view process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ViewsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	// 1. 解析 Canal 消息
	canalMsg, err := ToCanalMessage(msg, "video_views")
	if err != nil {
		return err
	}

	// 2. 播放记录通常只有 INSERT (用户观看)
	// 即使有 DELETE，也只是维护计数平衡
	switch canalMsg.Type {
	case INSERT:
		return s.applyDelta(ctx, canalMsg, 1)
	case DELETE:
		return s.applyDelta(ctx, canalMsg, -1)
	default:
		return nil
	}
}

func (s *ViewsHandler) applyDelta(ctx context.Context, msg *CanalMessage, delta int) error {
	videoID := StrToUint64(msg.Data[0]["video_id"])
	if videoID == 0 {
		return nil
	}

	if err := s.videoRepo.AddViews(ctx, videoID, delta); err != nil {
		return err
	}

	log.InfoContext(ctx, "video view delta applied", "videoID", videoID, "delta", delta)
	return nil
}
