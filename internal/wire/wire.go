package wire

import (
	"Tideline/internal/api"
	"Tideline/internal/api/config"
	"Tideline/internal/api/handler"
	"Tideline/internal/job"
	"Tideline/internal/pkg/cron"
	"Tideline/internal/pkg/kafka"
	"Tideline/internal/repository"
	"Tideline/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	toggleRepo := repository.NewToggleRepo(db)

	feedService := service.NewFeedService(postRepo, videoRepo, cfg.Feed)
	personalFeedService := service.NewPersonalFeedService(userFollowRepo, postRepo, videoRepo, feedService, cfg.Feed)
	toggleService := service.NewToggleService(toggleRepo)
	userFollowService := service.NewUserFollowService(userFollowRepo)

	handlers := &api.HandlersGroup{
		FeedHandler:       handler.NewFeedHandler(feedService, personalFeedService),
		PostActionHandler: handler.NewPostActionHandler(toggleService),
		UserFollowHandler: handler.NewUserFollowHandler(userFollowService, toggleService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, videoRepo)
	if err != nil {
		return nil, err
	}

	trendingJob := job.NewTrendingJob(feedService)
	cronMgr := cron.NewCronManager(trendingJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
