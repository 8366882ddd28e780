package model

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_username" json:"username"`
	Nickname  string    `gorm:"type:varchar(64)" json:"nickname"`
	AvatarURL string    `gorm:"type:varchar(512)" json:"avatar_url"`
	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
