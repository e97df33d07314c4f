package search

import (
	"context"
	"errors"

	"community-platform/app/search/api/internal/svc"
	"community-platform/app/search/api/internal/types"
	"community-platform/app/search/engine"
	"community-platform/app/search/model"
	"community-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
)

type ClickLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 搜索结果点击上报
func NewClickLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClickLogic {
	return &ClickLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ClickLogic) Click(req *types.ClickReq) (resp *types.ClickResp, err error) {
	// 1. 参数校验
	if _, err := engine.ParseEntityType(req.EntityType); err != nil {
		return nil, errorx.ErrSearchTypeInvalid(req.EntityType)
	}

	userID := userIDFromCtx(l.ctx)
	if userID == 0 {
		return nil, errorx.New(errorx.CodeLoginRequired)
	}

	// 2. 归属校验：只能给自己的历史记录挂点击
	if err := l.svcCtx.InteractionModel.HistoryBelongsTo(l.ctx, req.HistoryID, userID); err != nil {
		if errors.Is(err, model.ErrHistoryNotFound) {
			return nil, errorx.ErrHistoryNotFound()
		}
		l.Errorf("历史归属校验失败: history_id=%d, err=%v", req.HistoryID, err)
		return nil, errorx.ErrDBError(err)
	}

	// 3. 落库（重复点击幂等）
	err = l.svcCtx.InteractionModel.Create(l.ctx, &model.SearchInteraction{
		UserID:            userID,
		HistoryID:         req.HistoryID,
		ClickedEntityID:   req.EntityID,
		ClickedEntityType: req.EntityType,
	})
	if err != nil {
		l.Errorf("点击记录写入失败: history_id=%d, err=%v", req.HistoryID, err)
		return nil, errorx.ErrDBError(err)
	}

	return &types.ClickResp{Recorded: true}, nil
}
