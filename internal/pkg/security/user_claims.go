package security

import (
	"github.com/golang-jwt/jwt/v5"
)

const JWTSecret string = "Tideline"

// UserClaims 认证服务签发的 Token 所携带的业务信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
