package search

import (
	"context"
	"strings"
	"time"

	"community-platform/app/search/api/internal/svc"
	"community-platform/app/search/api/internal/types"
	"community-platform/app/search/engine"
	"community-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
)

type MultiSearchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 多类型搜索
func NewMultiSearchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MultiSearchLogic {
	return &MultiSearchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *MultiSearchLogic) MultiSearch(req *types.MultiSearchReq) (resp *types.MultiSearchResp, err error) {
	// 1. 解析类型列表：显式传了未知类型 -> 整体拒绝
	entityTypes, err := parseTypes(req.Types)
	if err != nil {
		return nil, errorx.ErrSearchTypeInvalid(req.Types)
	}

	// 2. 扇出搜索
	start := time.Now()
	result, err := l.svcCtx.Engine.MultiSearch(l.ctx, req.Query, entityTypes, req.Limit, userIDFromCtx(l.ctx))
	if err != nil {
		l.Errorf("多类型搜索失败: q=%s, types=%s, err=%v", req.Query, req.Types, err)
		return nil, mapEngineError(err)
	}

	// 3. 转换响应类型
	resp = &types.MultiSearchResp{
		Query:   req.Query,
		TookMs:  time.Since(start).Milliseconds(),
		Results: make(map[string][]types.SearchResultItem, len(result.Results)),
	}
	for t, results := range result.Results {
		resp.Results[string(t)] = convertResults(results)
	}
	for t, msg := range result.Errors {
		if resp.Errors == nil {
			resp.Errors = make(map[string]string)
		}
		resp.Errors[string(t)] = msg
	}
	return resp, nil
}

// parseTypes 解析逗号分隔的类型列表，空串返回 nil（引擎使用默认集合）
func parseTypes(raw string) ([]engine.EntityType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]engine.EntityType, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		t, err := engine.ParseEntityType(p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
