package model

import (
	"context"

	"gorm.io/gorm"
)

// ==================== User 用户模型 ====================
//
// 搜索服务视角下的用户：只关心参与搜索与过滤的字段，
// 账号/凭证等敏感数据由用户服务管理，不在本服务读取范围内

type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 基本信息
	Username  string `gorm:"type:varchar(50);uniqueIndex;not null;comment:用户名" json:"username"`
	FirstName string `gorm:"type:varchar(50);default:'';comment:名" json:"first_name"`
	LastName  string `gorm:"type:varchar(50);default:'';comment:姓" json:"last_name"`
	Bio       string `gorm:"type:varchar(500);default:'';comment:个人简介" json:"bio"`
	Location  string `gorm:"type:varchar(200);default:'';comment:所在地" json:"location"`

	// 角色与头像
	Role      string `gorm:"type:varchar(20);default:'student';comment:角色: student/teacher/admin" json:"role"`
	AvatarURL string `gorm:"type:varchar(500);default:'';comment:头像URL" json:"avatar_url"`

	// 可见性
	IsActive bool `gorm:"default:true;comment:是否启用（停用账号不参与搜索）" json:"is_active"`

	// 时间戳
	CreatedAt int64          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt int64          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ==================== UserModel 数据访问层 ====================

type UserModel struct {
	db *gorm.DB
}

func NewUserModel(db *gorm.DB) *UserModel {
	return &UserModel{db: db}
}

// FindSearchable 取回全部可搜索用户
func (m *UserModel) FindSearchable(ctx context.Context) ([]User, error) {
	var users []User
	err := m.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&users).Error
	return users, err
}
