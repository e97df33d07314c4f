package model

import (
	"context"

	"gorm.io/gorm"
)

// ==================== Thread 论坛主题帖模型 ====================

type Thread struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 内容
	Title   string `gorm:"type:varchar(200);not null;comment:标题" json:"title"`
	Content string `gorm:"type:text;comment:正文" json:"content"`

	// 归属（冗余作者名，避免搜索时联表）
	Category   string `gorm:"type:varchar(50);index;not null;comment:板块分类" json:"category"`
	AuthorID   uint64 `gorm:"index;not null;comment:作者用户ID" json:"author_id"`
	AuthorName string `gorm:"type:varchar(50);not null;comment:作者名称" json:"author_name"`

	// 状态与统计
	IsPinned  bool   `gorm:"default:false;comment:是否置顶" json:"is_pinned"`
	IsClosed  bool   `gorm:"default:false;comment:是否关闭回复" json:"is_closed"`
	VoteCount int64  `gorm:"default:0;comment:净赞数" json:"vote_count"`
	ViewCount uint32 `gorm:"default:0;comment:浏览量" json:"view_count"`

	// 时间戳
	CreatedAt int64          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt int64          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Thread) TableName() string {
	return "threads"
}

// ==================== ThreadModel 数据访问层 ====================

type ThreadModel struct {
	db *gorm.DB
}

func NewThreadModel(db *gorm.DB) *ThreadModel {
	return &ThreadModel{db: db}
}

// FindSearchable 取回全部可搜索主题帖
func (m *ThreadModel) FindSearchable(ctx context.Context) ([]Thread, error) {
	var threads []Thread
	err := m.db.WithContext(ctx).Find(&threads).Error
	return threads, err
}
