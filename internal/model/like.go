package model

import (
	"time"
)

type Like struct {
	UserID      uint64    `gorm:"primaryKey" json:"userId"`
	ContentType string    `gorm:"primaryKey;type:varchar(16)" json:"contentType"`
	ContentID   uint64    `gorm:"primaryKey;index:idx_content" json:"contentId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
