package utils

import (
	"errors"
	"fmt"
	"resto-doc-server/internal/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims 认证层签发的访问令牌内容。
// 本服务只解析并信任其中的身份与组织范围，不负责签发与账号管理。
type AccessClaims struct {
	UserID string `json:"uid"`
	OrgID  string `json:"org"`
	Type   string `json:"type"` // "access"
	jwt.RegisteredClaims
}

func getSecret() []byte {
	return []byte(config.Get().JWT.Secret)
}

// GenerateAccessToken 签发访问令牌（开发与测试用）。
func GenerateAccessToken(userID string, orgID string, duration time.Duration) (string, error) {
	claims := AccessClaims{
		UserID: userID,
		OrgID:  orgID,
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    "resto-doc-server",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

func ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		if claims.Type != "access" {
			return nil, errors.New("invalid token type")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
