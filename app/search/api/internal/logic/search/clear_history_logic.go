package search

import (
	"context"

	"community-platform/app/search/api/internal/svc"
	"community-platform/app/search/api/internal/types"
	"community-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
)

type ClearHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 清空搜索历史
func NewClearHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClearHistoryLogic {
	return &ClearHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ClearHistoryLogic) ClearHistory() (resp *types.ClearHistoryResp, err error) {
	userID := userIDFromCtx(l.ctx)
	if userID == 0 {
		return nil, errorx.New(errorx.CodeLoginRequired)
	}

	deleted, err := l.svcCtx.Engine.ClearHistory(l.ctx, userID)
	if err != nil {
		l.Errorf("清空搜索历史失败: user_id=%d, err=%v", userID, err)
		return nil, errorx.ErrDBError(err)
	}

	return &types.ClearHistoryResp{Deleted: deleted}, nil
}
