package service

import (
	"Tideline/internal/api/dto"
	"Tideline/internal/model"
	"Tideline/internal/pkg/consts"
	"time"

	"github.com/jinzhu/copier"
)

// NormalizePost 将帖子行归一化为信息流条目。
// 标题取正文前 50 个字符，允许截断在词中间。
func NormalizePost(post *model.Post, now time.Time) *dto.FeedItemDTO {
	if post == nil || post.IsDeleted {
		return nil
	}

	item := &dto.FeedItemDTO{}
	_ = copier.Copy(item, post)

	item.ContentType = consts.ContentTypePost
	item.AuthorID = post.UserID
	item.AuthorUsername = post.User.Username
	item.AuthorNickname = post.User.Nickname
	item.AuthorAvatarURL = post.User.AvatarURL
	item.Title = truncateTitle(post.Content, consts.PostTitleLength)
	item.Body = post.Content
	item.ViewsCount = 0

	fillDerived(item, now)
	return item
}

// NormalizeVideo 将视频行归一化为信息流条目。
// 仅处理完成 (ready) 的视频可进入任何信息流。
func NormalizeVideo(video *model.Video, now time.Time) *dto.FeedItemDTO {
	if video == nil || video.IsDeleted || video.Status != model.VideoStatusReady {
		return nil
	}

	item := &dto.FeedItemDTO{}
	_ = copier.Copy(item, video)

	item.ContentType = consts.ContentTypeVideo
	item.AuthorID = video.UserID
	item.AuthorUsername = video.User.Username
	item.AuthorNickname = video.User.Nickname
	item.AuthorAvatarURL = video.User.AvatarURL
	item.Title = video.Title
	item.Body = video.Description

	mediaURL := video.VideoURL
	item.MediaURL = &mediaURL
	if video.ThumbnailURL != "" {
		thumbnailURL := video.ThumbnailURL
		item.ThumbnailURL = &thumbnailURL
	}
	duration := video.Duration
	item.Duration = &duration
	fileSize := video.FileSize
	item.FileSize = &fileSize
	if video.Format != "" {
		format := video.Format
		item.Format = &format
	}

	fillDerived(item, now)
	return item
}

func fillDerived(item *dto.FeedItemDTO, now time.Time) {
	age := int64(now.Sub(item.CreatedAt) / time.Second)
	if age < 0 {
		age = 0
	}
	item.AgeSeconds = age
	item.RecencyCategory = recencyCategory(age)
	item.EngagementScore = EngagementScore(item)
}

func recencyCategory(ageSeconds int64) string {
	switch {
	case ageSeconds < 3600:
		return consts.RecencyRecent
	case ageSeconds < 86400:
		return consts.RecencyToday
	case ageSeconds < 604800:
		return consts.RecencyWeek
	default:
		return consts.RecencyOlder
	}
}

func truncateTitle(content string, maxLen int) string {
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen])
}
