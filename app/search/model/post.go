package model

import (
	"context"

	"gorm.io/gorm"
)

// ==================== Post 帖子回复模型 ====================

type Post struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 归属
	ThreadID   uint64 `gorm:"index;not null;comment:所属主题帖ID" json:"thread_id"`
	AuthorID   uint64 `gorm:"index;not null;comment:作者用户ID" json:"author_id"`
	AuthorName string `gorm:"type:varchar(50);not null;comment:作者名称" json:"author_name"`

	// 内容与统计
	Content   string `gorm:"type:text;not null;comment:回复内容" json:"content"`
	VoteCount int64  `gorm:"default:0;comment:净赞数" json:"vote_count"`

	// 时间戳
	CreatedAt int64          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt int64          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// ==================== PostModel 数据访问层 ====================

type PostModel struct {
	db *gorm.DB
}

func NewPostModel(db *gorm.DB) *PostModel {
	return &PostModel{db: db}
}

// FindSearchable 取回全部可搜索回复
func (m *PostModel) FindSearchable(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := m.db.WithContext(ctx).Find(&posts).Error
	return posts, err
}
