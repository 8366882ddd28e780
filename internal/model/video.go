package model

import (
	"time"
)

// 视频处理状态
const (
	VideoStatusProcessing = "processing"
	VideoStatusReady      = "ready"
	VideoStatusFailed     = "failed"
)

type Video struct {
	ID            uint64    `gorm:"primaryKey"`
	UserID        uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	VideoURL      string    `gorm:"type:varchar(512);not null" json:"video_url"`
	ThumbnailURL  string    `gorm:"type:varchar(512)" json:"thumbnail_url"`
	Duration      int       `gorm:"not null;default:0" json:"duration"` // 秒
	FileSize      int64     `gorm:"not null;default:0" json:"file_size"`
	Format        string    `gorm:"type:varchar(16)" json:"format"`
	Status        string    `gorm:"type:varchar(16);not null;default:'processing';index:idx_status" json:"status"`
	ViewsCount    int       `gorm:"not null;default:0" json:"views_count"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count"`
	IsDeleted     bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt     time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Video) TableName() string {
	return "videos"
}
