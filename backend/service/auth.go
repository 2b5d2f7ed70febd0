package service

import (
	"errors"
	"time"

	"papershare/backend/common"
	"papershare/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenDuration bounds how long a minted API token stays valid.
const AccessTokenDuration = 24 * time.Hour

const tokenBlacklistPrefix = "jwt:blacklist:"

// Claims is the JWT payload for header-token API access.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed access token for the given user.
func GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.Id,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "papershare",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(common.JWTSecret))
}

// ValidateToken parses and verifies an access token.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(common.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// BlacklistToken invalidates a token on logout. Requires redis; without it
// tokens simply age out at their expiry.
func BlacklistToken(tokenString string) {
	if !common.RedisEnabled {
		return
	}
	if err := common.RedisSet(tokenBlacklistPrefix+tokenString, "1", AccessTokenDuration); err != nil {
		common.SysError("failed to blacklist token: " + err.Error())
	}
}

// IsTokenBlacklisted reports whether a token was invalidated by logout.
func IsTokenBlacklisted(tokenString string) bool {
	if !common.RedisEnabled {
		return false
	}
	_, err := common.RedisGet(tokenBlacklistPrefix + tokenString)
	return err == nil
}
