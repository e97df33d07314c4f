package model

import (
	"context"

	"gorm.io/gorm"
)

// ==================== NewsItem 校园新闻模型 ====================

// 新闻状态
const (
	NewsStatusDraft     int8 = 0 // 草稿
	NewsStatusPublished int8 = 1 // 已发布
	NewsStatusArchived  int8 = 2 // 已归档
)

type NewsItem struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 内容
	Title   string `gorm:"type:varchar(200);not null;comment:标题" json:"title"`
	Summary string `gorm:"type:varchar(500);default:'';comment:摘要" json:"summary"`
	Content string `gorm:"type:text;comment:正文" json:"content"`

	// 归属
	Category   string `gorm:"type:varchar(50);index;not null;comment:栏目分类" json:"category"`
	AuthorID   uint64 `gorm:"index;not null;comment:作者用户ID" json:"author_id"`
	AuthorName string `gorm:"type:varchar(50);not null;comment:作者名称" json:"author_name"`

	// 状态
	Status      int8  `gorm:"default:0;index;comment:状态: 0草稿 1已发布 2已归档" json:"status"`
	PublishedAt int64 `gorm:"index;default:0;comment:发布时间" json:"published_at"`

	// 时间戳
	CreatedAt int64          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (NewsItem) TableName() string {
	return "news_items"
}

// ==================== NewsModel 数据访问层 ====================

type NewsModel struct {
	db *gorm.DB
}

func NewNewsModel(db *gorm.DB) *NewsModel {
	return &NewsModel{db: db}
}

// FindSearchable 取回全部可搜索新闻（仅已发布）
func (m *NewsModel) FindSearchable(ctx context.Context) ([]NewsItem, error) {
	var items []NewsItem
	err := m.db.WithContext(ctx).
		Where("status = ?", NewsStatusPublished).
		Find(&items).Error
	return items, err
}
