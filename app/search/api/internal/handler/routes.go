// ============================================================================
// 路由注册
// ============================================================================
//
// 功能说明：
//   集中管理搜索服务的全部 HTTP 路由：
//   - 搜索/建议路由匿名可用（可选认证：带 Token 会落历史）
//   - 历史/点击路由需要登录
//
// 中间件执行顺序：
//   TraceID -> [OptionalAuth | Auth] -> Handler
//
// ============================================================================

package handler

import (
	"net/http"

	"community-platform/app/search/api/internal/handler/search"
	"community-platform/app/search/api/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

// RegisterHandlers 注册所有路由
func RegisterHandlers(server *rest.Server, ctx *svc.ServiceContext) {
	// ==================== 全局中间件 ====================
	server.Use(func(next http.HandlerFunc) http.HandlerFunc {
		return ctx.TraceID(next)
	})

	// ==================== 公开路由（无需认证） ====================
	server.AddRoutes(
		[]rest.Route{
			// 健康检查
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(ctx),
			},
		},
	)

	// ==================== 搜索路由（匿名可用，带 Token 落历史） ====================
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{ctx.OptionalAuth},
			[]rest.Route{
				// 单类型搜索
				{
					Method:  http.MethodGet,
					Path:    "/api/v1/search",
					Handler: search.SearchHandler(ctx),
				},
				// 多类型搜索
				{
					Method:  http.MethodGet,
					Path:    "/api/v1/search/multi",
					Handler: search.MultiSearchHandler(ctx),
				},
				// 搜索建议
				{
					Method:  http.MethodGet,
					Path:    "/api/v1/search/suggest",
					Handler: search.SuggestHandler(ctx),
				},
			}...,
		),
	)

	// ==================== 需要认证的路由 ====================
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{ctx.Auth},
			[]rest.Route{
				// 点击上报
				{
					Method:  http.MethodPost,
					Path:    "/api/v1/search/click",
					Handler: search.ClickHandler(ctx),
				},
				// 清空搜索历史
				{
					Method:  http.MethodDelete,
					Path:    "/api/v1/search/history",
					Handler: search.ClearHistoryHandler(ctx),
				},
			}...,
		),
	)
}
