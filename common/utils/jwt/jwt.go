// ============================================================================
// JWT 工具
// ============================================================================

package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidToken = errors.New("invalid token")
)

type AuthConfig struct {
	Secret string
	Expire int64 // 秒
}

type Claims struct {
	UserId int64 `json:"userId"`
	Role   Role  `json:"role"`
	jwt.RegisteredClaims
}

type TokenResult struct {
	Token    string
	ExpireAt int64
}

// GenerateToken 签发访问 Token（HS256）
func GenerateToken(userId int64, role Role, cfg AuthConfig) (TokenResult, error) {
	return generateToken(userId, role, cfg, time.Now())
}

func IsAdmin(ctx context.Context) bool {
	role, ok := GetRoleFromContext(ctx)
	return ok && role == RoleAdmin
}

func GetRoleFromContext(ctx context.Context) (Role, bool) {
	if ctx == nil {
		return "", false
	}
	value := ctx.Value("role")
	switch v := value.(type) {
	case string:
		return Role(v), v != ""
	case []byte:
		if len(v) == 0 {
			return "", false
		}
		return Role(string(v)), true
	default:
		if value == nil {
			return "", false
		}
		role := fmt.Sprint(value)
		if role == "" {
			return "", false
		}
		return Role(role), true
	}
}

func ValidateRole(role Role) error {
	if role != RoleStudent && role != RoleStaff && role != RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}

func generateToken(userId int64, role Role, cfg AuthConfig, now time.Time) (TokenResult, error) {
	if err := ValidateRole(role); err != nil {
		return TokenResult{}, err
	}
	if cfg.Secret == "" || cfg.Expire <= 0 {
		return TokenResult{}, errors.New("invalid auth config")
	}

	expireAt := now.Add(time.Duration(cfg.Expire) * time.Second)
	claims := Claims{
		UserId: userId,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expireAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return TokenResult{}, err
	}

	return TokenResult{
		Token:    signed,
		ExpireAt: claims.ExpiresAt.Unix(),
	}, nil
}

// ParseToken 解析并校验 Token
func ParseToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// IsTokenExpired 判断解析错误是否由过期导致
func IsTokenExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
