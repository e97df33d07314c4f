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

// 多类型搜索
func MultiSearchHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.MultiSearchReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := search.NewMultiSearchLogic(r.Context(), svcCtx)
		resp, err := l.MultiSearch(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
