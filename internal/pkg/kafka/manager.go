package kafka

import (
	"Tideline/internal/api/config"
	"Tideline/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	viewConsumer sarama.ConsumerGroup
	viewHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, videoRepo repository.VideoRepo) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	viewConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaViewConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	viewHandler := NewViewsHandler(videoRepo)

	return &ConsumerManager{
		viewConsumer: viewConsumer,
		viewHandler:  viewHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Video View Consumer
	go func() {
		topic := cfg.KafkaViewConsumer.Topic
		log.Info("Video View consumer started", "topic", topic)
		for {
			if err := m.viewConsumer.Consume(ctx, []string{topic}, m.viewHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.viewConsumer.Close(); err != nil {
		log.Error("Failed to close view consumer", "err", err)
	}

	return nil
}
