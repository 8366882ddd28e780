package util

import (
	"encoding/base64"
	"time"

	"github.com/goccy/go-json"
)

// FeedCursor 记录上一页最后一条内容的排序键 (created_at, id)
type FeedCursor struct {
	CreatedAt time.Time `json:"t"`
	ID        uint64    `json:"i"`
}

// EncodeCursor 将排序键编码为 Base64 字符串
func EncodeCursor(cursor *FeedCursor) string {
	if cursor == nil {
		return ""
	}
	b, _ := json.Marshal(cursor)
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeCursor 将前端传来的 Base64 字符串解码为排序键
func DecodeCursor(cursor string) (*FeedCursor, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, err
	}
	var c FeedCursor
	if err = json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
