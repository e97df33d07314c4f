package middleware

import (
	"net/http"

	"community-platform/common/ctxdata"
	"community-platform/common/utils/jwt"
)

// ==================== 可选认证中间件 ====================
//
// OptionalAuthMiddleware 搜索类接口匿名可用：
// 带了有效 Token 就注入身份（搜索会落历史），
// 没带或 Token 无效按匿名处理，不拦截请求。
// 无效 Token 不报错：匿名搜索本来就合法，降级比拒绝友好

type OptionalAuthMiddleware struct {
	accessSecret string
}

func NewOptionalAuthMiddleware(accessSecret string) *OptionalAuthMiddleware {
	return &OptionalAuthMiddleware{accessSecret: accessSecret}
}

func (m *OptionalAuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			next(w, r)
			return
		}

		claims, err := jwt.ParseToken(token, m.accessSecret)
		if err != nil {
			next(w, r)
			return
		}

		ctx := ctxdata.WithUserID(r.Context(), claims.UserId)
		ctx = ctxdata.WithRole(ctx, string(claims.Role))
		next(w, r.WithContext(ctx))
	}
}
