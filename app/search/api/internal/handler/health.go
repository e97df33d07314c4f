package handler

import (
	"net/http"

	"community-platform/app/search/api/internal/svc"
	"community-platform/app/search/api/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// 健康检查
//
// 只探活进程与 DB 连接，不探依赖的 Redis：
// 缓存与消息都可降级，不应让探针把服务摘掉
func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"

		sqlDB, err := svcCtx.DB.DB()
		if err != nil || sqlDB.PingContext(r.Context()) != nil {
			status = "degraded"
		}

		httpx.OkJsonCtx(r.Context(), w, &types.HealthResp{
			Status:  status,
			Service: svcCtx.Config.Name,
		})
	}
}
