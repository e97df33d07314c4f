package model

import (
	"context"

	"gorm.io/gorm"
)

// ==================== Notice 布告栏信息模型 ====================
//
// 校园布告栏的二手/启事/招募信息，带价格与地点

type Notice struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 内容
	Title       string `gorm:"type:varchar(200);not null;comment:标题" json:"title"`
	Description string `gorm:"type:text;comment:详情" json:"description"`

	// 分类与交易信息
	Category string  `gorm:"type:varchar(50);index;not null;comment:分类" json:"category"`
	Price    float64 `gorm:"type:decimal(10,2);default:0;comment:价格（0=面议/免费）" json:"price"`
	Location string  `gorm:"type:varchar(200);default:'';comment:地点" json:"location"`
	IsSold   bool    `gorm:"default:false;comment:是否已成交" json:"is_sold"`

	// 归属
	PosterID   uint64 `gorm:"index;not null;comment:发布者用户ID" json:"poster_id"`
	PosterName string `gorm:"type:varchar(50);not null;comment:发布者名称" json:"poster_name"`

	// 时间戳
	CreatedAt int64          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt int64          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notice) TableName() string {
	return "notices"
}

// ==================== NoticeModel 数据访问层 ====================

type NoticeModel struct {
	db *gorm.DB
}

func NewNoticeModel(db *gorm.DB) *NoticeModel {
	return &NoticeModel{db: db}
}

// FindSearchable 取回全部可搜索布告信息
func (m *NoticeModel) FindSearchable(ctx context.Context) ([]Notice, error) {
	var notices []Notice
	err := m.db.WithContext(ctx).Find(&notices).Error
	return notices, err
}
