package consts

const (
	ContentTypePost  = "post"
	ContentTypeVideo = "video"
)

const (
	// PostTitleLength 帖子标题取正文前 50 个字符
	PostTitleLength = 50
)

const (
	RecencyRecent = "recent"
	RecencyToday  = "today"
	RecencyWeek   = "week"
	RecencyOlder  = "older"
)
