package consts

const (
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	FeedTrendingKey       = "feed:trending:"
	ContentLikeCountKey   = "content:like:count:"
)
