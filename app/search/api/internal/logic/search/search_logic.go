package search

import (
	"context"
	"errors"
	"time"

	"community-platform/app/search/api/internal/svc"
	"community-platform/app/search/api/internal/types"
	"community-platform/app/search/engine"
	"community-platform/common/ctxdata"
	"community-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
)

type SearchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 单类型搜索
func NewSearchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SearchLogic {
	return &SearchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SearchLogic) Search(req *types.SearchReq) (resp *types.SearchResp, err error) {
	// 1. 参数校验
	entityType, err := engine.ParseEntityType(req.Type)
	if err != nil {
		return nil, errorx.ErrSearchTypeInvalid(req.Type)
	}
	if keywordLen := len([]rune(req.Query)); keywordLen > 100 {
		return nil, errorx.ErrInvalidParams("搜索关键词不能超过100个字符")
	}

	// 2. 执行搜索（匿名 userID=0，不落历史）
	userID := userIDFromCtx(l.ctx)
	start := time.Now()
	results, err := l.svcCtx.Engine.Search(l.ctx, entityType, req.Query, buildFilters(req), userID)
	if err != nil {
		l.Errorf("搜索失败: type=%s, q=%s, err=%v", req.Type, req.Query, err)
		return nil, mapEngineError(err)
	}

	// 3. 转换响应类型
	return &types.SearchResp{
		Type:    string(entityType),
		Query:   req.Query,
		Total:   len(results),
		TookMs:  time.Since(start).Milliseconds(),
		Results: convertResults(results),
	}, nil
}

// buildFilters 将显式声明的查询参数收敛为过滤器键值表
//
// 全部键一次性传入：引擎只认当前类型描述符里声明过的键，其余静默忽略
func buildFilters(req *types.SearchReq) map[string]string {
	return map[string]string{
		"category":            req.Category,
		"author":              req.Author,
		"date_from":           req.DateFrom,
		"date_to":             req.DateTo,
		"role":                req.Role,
		"location":            req.Location,
		"has_profile_picture": req.HasAvatar,
		"is_pinned":           req.IsPinned,
		"is_closed":           req.IsClosed,
		"has_votes":           req.HasVotes,
		"min_votes":           req.MinVotes,
		"max_votes":           req.MaxVotes,
		"thread_id":           req.ThreadID,
		"min_price":           req.MinPrice,
		"max_price":           req.MaxPrice,
		"is_sold":             req.IsSold,
	}
}

// convertResults 引擎结果 -> API 响应
func convertResults(results []engine.RankedResult) []types.SearchResultItem {
	items := make([]types.SearchResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, types.SearchResultItem{
			EntityID:   r.EntityID,
			EntityType: string(r.EntityType),
			Score:      r.Score,
			MatchedVia: string(r.MatchedVia),
			Fields:     r.Fields,
		})
	}
	return items
}

// mapEngineError 引擎错误 -> 业务错误
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownEntityType):
		return errorx.ErrSearchTypeInvalid("")
	case errors.Is(err, context.DeadlineExceeded):
		return errorx.ErrSearchTimeout()
	default:
		return errorx.ErrDBError(err)
	}
}

// userIDFromCtx 取当前登录用户ID，匿名返回 0
func userIDFromCtx(ctx context.Context) uint64 {
	userID := ctxdata.GetUserIDFromCtx(ctx)
	if userID <= 0 {
		return 0
	}
	return uint64(userID)
}
