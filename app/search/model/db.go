package model

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ==================== 数据库连接 ====================

// MySQLConfig 数据库配置
type MySQLConfig struct {
	Host            string `json:",default=127.0.0.1"`
	Port            int    `json:",default=3306"`
	Username        string
	Password        string
	Database        string
	MaxOpenConns    int  `json:",default=100"`  // 最大打开连接数
	MaxIdleConns    int  `json:",default=10"`   // 最大空闲连接数
	ConnMaxLifetime int  `json:",default=3600"` // 连接生命周期（秒）
	AutoMigrate     bool `json:",default=false"`
}

// DSN 生成 MySQL 连接串
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// NewDB 创建 gorm 数据库连接
func NewDB(cfg MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接 MySQL 失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate 建表（开发/测试环境用，生产走 SQL 脚本）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Thread{},
		&Post{},
		&NewsItem{},
		&Notice{},
		&SearchHistory{},
		&SearchInteraction{},
	)
}
