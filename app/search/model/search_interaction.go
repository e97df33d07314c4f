package model

import (
	"context"
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ==================== SearchInteraction 搜索点击模型 ====================
//
// 记录用户对某条历史记录下搜索结果的点击，用于个性化与分析。
// (user_id, history_id) 唯一：一条历史最多关联一次点击；点击非必需

var ErrHistoryNotFound = errors.New("搜索历史不存在")

type SearchInteraction struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID    uint64 `gorm:"uniqueIndex:uk_user_history,priority:1;not null;comment:用户ID" json:"user_id"`
	HistoryID uint64 `gorm:"uniqueIndex:uk_user_history,priority:2;not null;comment:历史记录ID" json:"history_id"`

	// 点击目标
	ClickedEntityID   uint64 `gorm:"not null;comment:点击的实体ID" json:"clicked_entity_id"`
	ClickedEntityType string `gorm:"type:varchar(20);not null;comment:点击的实体类型" json:"clicked_entity_type"`

	CreatedAt int64 `gorm:"autoCreateTime" json:"created_at"`
}

func (SearchInteraction) TableName() string {
	return "search_interactions"
}

// ==================== SearchInteractionModel 数据访问层 ====================

type SearchInteractionModel struct {
	db *gorm.DB
}

func NewSearchInteractionModel(db *gorm.DB) *SearchInteractionModel {
	return &SearchInteractionModel{db: db}
}

// mysqlErrDuplicateEntry MySQL 唯一键冲突错误码
const mysqlErrDuplicateEntry = 1062

// Create 记录一次点击
//
// 唯一键冲突（同一用户对同一历史重复点击）视为幂等成功
func (m *SearchInteractionModel) Create(ctx context.Context, interaction *SearchInteraction) error {
	err := m.db.WithContext(ctx).Create(interaction).Error
	if err != nil {
		var mysqlErr *gomysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return nil
		}
		return err
	}
	return nil
}

// HistoryBelongsTo 校验历史记录归属（防止给别人的历史挂点击）
func (m *SearchInteractionModel) HistoryBelongsTo(ctx context.Context, historyID, userID uint64) error {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&SearchHistory{}).
		Where("id = ? AND user_id = ?", historyID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrHistoryNotFound
	}
	return nil
}
