package api

import (
	"Tideline/internal/api/middleware"
	"Tideline/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		feedGroup := apiGroup.Group("/feed")
		{
			authOptGroup := feedGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.FeedHandler.GetFeed)
				authOptGroup.GET("/trending", group.FeedHandler.GetTrending)
			}

			authGroup := feedGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/personal", group.FeedHandler.GetPersonalFeed)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			authActionGroup := postActionGroup.Group("")
			authActionGroup.Use(middleware.AuthMiddleware())
			{
				authActionGroup.POST("/likes/:content_type/:content_id", group.PostActionHandler.ToggleLike)
				authActionGroup.GET("/state/:content_type/:content_id", group.PostActionHandler.GetLikeState)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		{
			userFollowGroup.Use(middleware.AuthMiddleware())
			{
				userFollowGroup.GET("/followers/count", group.UserFollowHandler.GetUserFollowersCount)
				userFollowGroup.GET("/followings/count", group.UserFollowHandler.GetUserFollowingCount)
				userFollowGroup.GET("/isfollow/:following_id", group.UserFollowHandler.GetFollowState)
				userFollowGroup.POST("/follow/:following_id", group.UserFollowHandler.ToggleFollow)
			}
		}
	}

	return r
}
