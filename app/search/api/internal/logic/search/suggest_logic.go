package search

import (
	"context"

	"community-platform/app/search/api/internal/svc"
	"community-platform/app/search/api/internal/types"
	"community-platform/app/search/engine"
	"community-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
)

type SuggestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 搜索建议
func NewSuggestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SuggestLogic {
	return &SuggestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SuggestLogic) Suggest(req *types.SuggestReq) (resp *types.SuggestResp, err error) {
	var entityType engine.EntityType
	if req.Type != "" {
		entityType, err = engine.ParseEntityType(req.Type)
		if err != nil {
			return nil, errorx.ErrSearchTypeInvalid(req.Type)
		}
	}

	suggestions, err := l.svcCtx.Engine.Suggest(l.ctx, req.Keyword, entityType, req.Limit)
	if err != nil {
		l.Errorf("搜索建议查询失败: q=%s, err=%v", req.Keyword, err)
		return nil, mapEngineError(err)
	}

	items := make([]types.SuggestItem, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, types.SuggestItem{
			QueryText: s.QueryText,
			Frequency: s.Frequency,
			LastUsed:  s.LastUsed,
		})
	}
	return &types.SuggestResp{Suggestions: items}, nil
}
