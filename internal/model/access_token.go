package model

import (
	"time"
)

// AccessToken 持有者令牌
// 令牌是服务端存储的不透明字符串：登录时撤销该用户全部旧令牌（单会话），
// 登出只删除当前请求携带的这一条。
type AccessToken struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId    int64     `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
}

// TableName 自定义表名
func (AccessToken) TableName() string {
	return "access_token"
}

// Expired 是否已过期
func (t *AccessToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
