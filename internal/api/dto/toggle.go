package dto

// ToggleResultDTO 切换操作结果，Counts 为基于关系表重新统计后的计数
type ToggleResultDTO struct {
	Active bool             `json:"active"`
	Counts map[string]int64 `json:"counts"`
}

// FollowStateDTO 关注关系状态
type FollowStateDTO struct {
	Following  bool `json:"following"`
	FollowedBy bool `json:"followed_by"`
	Mutual     bool `json:"mutual"`
}

// LikeStateDTO 点赞状态
type LikeStateDTO struct {
	Liked bool `json:"liked"`
}
