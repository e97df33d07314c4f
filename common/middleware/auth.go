package middleware

import (
	"net/http"
	"strings"

	"community-platform/common/ctxdata"
	"community-platform/common/errorx"
	"community-platform/common/response"
	"community-platform/common/utils/jwt"
)

// ==================== 认证中间件 ====================
//
// AuthMiddleware 强制登录：解析 Authorization Bearer Token，
// 将 userId / role 注入 context；缺失或无效直接 401。
// 清空历史、点击上报等写操作必须走此中间件

type AuthMiddleware struct {
	accessSecret string
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{accessSecret: accessSecret}
}

func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			response.Fail(w, errorx.New(errorx.CodeLoginRequired))
			return
		}

		claims, err := jwt.ParseToken(token, m.accessSecret)
		if err != nil {
			if jwt.IsTokenExpired(err) {
				response.Fail(w, errorx.New(errorx.CodeTokenExpired))
				return
			}
			response.Fail(w, errorx.ErrInvalidToken())
			return
		}

		ctx := ctxdata.WithUserID(r.Context(), claims.UserId)
		ctx = ctxdata.WithRole(ctx, string(claims.Role))
		next(w, r.WithContext(ctx))
	}
}

// extractBearerToken 从 Authorization 头提取 Bearer Token
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
