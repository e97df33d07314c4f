// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package search

import (
	"net/http"

	"community-platform/app/search/api/internal/logic/search"
	"community-platform/app/search/api/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// 清空搜索历史
func ClearHistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := search.NewClearHistoryLogic(r.Context(), svcCtx)
		resp, err := l.ClearHistory()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
