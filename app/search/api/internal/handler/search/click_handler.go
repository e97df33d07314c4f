// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package search

import (
	"net/http"

	"community-platform/app/search/api/internal/logic/search"
	"community-platform/app/search/api/internal/svc"
	"community-platform/app/search/api/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// 搜索结果点击上报
func ClickHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ClickReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := search.NewClickLogic(r.Context(), svcCtx)
		resp, err := l.Click(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
