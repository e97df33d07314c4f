// Package cache 搜索结果的 Redis 读穿缓存与失效
package cache

import (
	"context"
	"encoding/json"
	"time"

	"community-platform/app/search/engine"
	commonCache "community-platform/common/cache"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// ==================== 结果缓存 ====================

// RedisResultCache 实现 engine.ResultCache
//
// 缓存整个排序+过滤后的结果集（JSON），TTL 带抖动防止雪崩。
// 缓存故障一律降级为未命中：搜索必须能在 Redis 挂掉时继续工作
type RedisResultCache struct {
	rds *redis.Redis
	ttl time.Duration
}

// NewRedisResultCache 创建结果缓存
func NewRedisResultCache(rds *redis.Redis, ttl time.Duration) *RedisResultCache {
	if ttl <= 0 {
		ttl = commonCache.DefaultTTL
	}
	return &RedisResultCache{rds: rds, ttl: ttl}
}

// Get 实现 engine.ResultCache
func (c *RedisResultCache) Get(ctx context.Context, entityType engine.EntityType,
	key string) ([]engine.RankedResult, bool) {

	val, err := c.rds.GetCtx(ctx, commonCache.SearchResultKey(string(entityType), key))
	if err != nil {
		logx.WithContext(ctx).Errorf("[SearchCache] 读取失败: type=%s, err=%v", entityType, err)
		return nil, false
	}
	if val == "" {
		return nil, false
	}

	var results []engine.RankedResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		// 脏数据当未命中处理，由回填覆盖
		logx.WithContext(ctx).Errorf("[SearchCache] 反序列化失败: type=%s, err=%v", entityType, err)
		return nil, false
	}
	return results, true
}

// Set 实现 engine.ResultCache
func (c *RedisResultCache) Set(ctx context.Context, entityType engine.EntityType,
	key string, results []engine.RankedResult) {

	data, err := json.Marshal(results)
	if err != nil {
		return
	}

	redisKey := commonCache.SearchResultKey(string(entityType), key)
	ttlSeconds := commonCache.RandomTTLSeconds(c.ttl)
	if err := c.rds.SetexCtx(ctx, redisKey, string(data), ttlSeconds); err != nil {
		logx.WithContext(ctx).Errorf("[SearchCache] 写入失败: type=%s, err=%v", entityType, err)
	}
}

// InvalidateType 按实体类型批量失效结果缓存
//
// 实体变更事件到达时调用：同类型的任何变更都会让该类型全部结果过期。
// 结果集缓存无法按单个实体定点失效，按类型清比等 TTL 到期更及时
func (c *RedisResultCache) InvalidateType(ctx context.Context, entityType string) (int, error) {
	keys, err := c.rds.KeysCtx(ctx, commonCache.SearchResultTypePattern(entityType))
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return c.rds.DelCtx(ctx, keys...)
}
