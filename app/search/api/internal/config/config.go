// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package config

import (
	"community-platform/app/search/engine"
	"community-platform/app/search/model"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	// JWT 认证配置
	Auth struct {
		AccessSecret string
		AccessExpire int64
	}

	// MySQL 配置（五张实体表 + 搜索历史）
	MySQL model.MySQLConfig

	// 结果缓存 Redis
	CacheRedis redis.RedisConf

	// 结果缓存 TTL（秒），0 表示禁用缓存
	CacheTTLSeconds int `json:",default=300"`

	// 引擎参数（阈值、预算、默认条数）
	Engine engine.Config

	// 消息中间件（实体变更事件 -> 缓存失效）
	Messaging struct {
		Enabled  bool   `json:",default=false"`
		Addr     string `json:",default=localhost:6379"`
		Password string `json:",optional"`
		DB       int    `json:",default=0"`
	}

	// Prometheus 指标命名空间
	MetricsNamespace string `json:",default=search"`
}
