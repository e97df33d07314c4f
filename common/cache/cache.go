// Package cache 提供通用缓存工具
//
// 设计原则：
//   - Key 命名规范：{业务}:{模块}:{标识}，如 search:result:thread:ab12cd
//   - 随机 TTL 防止缓存雪崩
//   - 与 go-zero redis 客户端配合使用
package cache

import (
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/mathx"
)

// ==================== 默认配置 ====================

const (
	// DefaultTTL 默认缓存过期时间（5 分钟）
	DefaultTTL = 5 * time.Minute

	// ShortTTL 短缓存过期时间（1 分钟，适用于热点查询结果）
	ShortTTL = time.Minute

	// DefaultJitter 默认 TTL 抖动系数（±10%）
	// 5min ± 10% = 4.5min ~ 5.5min
	DefaultJitter = 0.1
)

// unstable 随机数生成器，用于 TTL 抖动
var unstable = mathx.NewUnstable(DefaultJitter)

// ==================== TTL 工具函数 ====================

// RandomTTL 生成带抖动的 TTL，防止缓存雪崩
//
// 原理：
//   - 如果大量缓存同时设置相同 TTL，会在同一时间过期
//   - 大量请求同时穿透到 DB，造成缓存雪崩
//   - 添加 ±10% 随机抖动，使过期时间分散
//
// 示例：
//
//	RandomTTL(5 * time.Minute) => 4.5min ~ 5.5min
func RandomTTL(base time.Duration) time.Duration {
	return time.Duration(unstable.AroundDuration(base))
}

// RandomTTLSeconds 返回带抖动的 TTL（秒数）
//
// 用于需要秒数的场景，如 Redis SETEX
func RandomTTLSeconds(base time.Duration) int {
	return int(RandomTTL(base).Seconds())
}

// ==================== Key 生成函数 ====================

// SearchResultKey 搜索结果缓存 Key
//
// 格式：search:result:{entity_type}:{hash}
// TTL：5min ± 10%
// 用途：缓存一次排序+过滤后的完整结果集
// hash 为 查询文本+过滤参数 的摘要，同参数请求命中同一份缓存
func SearchResultKey(entityType, hash string) string {
	return fmt.Sprintf("search:result:%s:%s", entityType, hash)
}

// SearchResultTypePattern 某实体类型全部结果缓存的匹配模式
//
// 用途：实体变更事件到达时按类型批量失效
func SearchResultTypePattern(entityType string) string {
	return fmt.Sprintf("search:result:%s:*", entityType)
}

// SuggestKey 搜索建议缓存 Key
//
// 格式：search:suggest:{entity_type}:{keyword}
// TTL：1min（历史持续增长，建议短缓存即可）
func SuggestKey(entityType, keyword string) string {
	if entityType == "" {
		entityType = "all"
	}
	return fmt.Sprintf("search:suggest:%s:%s", entityType, keyword)
}
