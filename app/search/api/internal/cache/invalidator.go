package cache

import (
	"context"

	"community-platform/app/search/engine"
	"community-platform/common/messaging"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/zeromicro/go-zero/core/logx"
)

// ==================== 缓存失效订阅 ====================

// Invalidator 消费实体变更事件并失效对应类型的结果缓存
type Invalidator struct {
	cache *RedisResultCache
}

// NewInvalidator 创建缓存失效器
func NewInvalidator(cache *RedisResultCache) *Invalidator {
	return &Invalidator{cache: cache}
}

// Register 将失效处理器挂到消息客户端上
//
// 调用方随后需要执行 client.Run(ctx) 启动消费
func (inv *Invalidator) Register(client *messaging.Client) {
	client.Subscribe(messaging.TopicEntityChanged, "search-cache-invalidator", inv.handle)
}

// handle 处理一条实体变更事件
//
// 返回 nil 即 ACK：未知类型与失效失败都不值得重投，
// 结果缓存本身有 TTL 兜底
func (inv *Invalidator) handle(msg *message.Message) error {
	evt, err := messaging.UnmarshalEntityChangedEvent(msg.Payload)
	if err != nil {
		logx.Errorf("[SearchCache] 变更事件解析失败: uuid=%s, err=%v", msg.UUID, err)
		return nil
	}

	if _, err := engine.ParseEntityType(evt.EntityType); err != nil {
		logx.Errorf("[SearchCache] 变更事件类型未知: type=%s", evt.EntityType)
		return nil
	}

	deleted, err := inv.cache.InvalidateType(context.Background(), evt.EntityType)
	if err != nil {
		logx.Errorf("[SearchCache] 缓存失效失败: type=%s, err=%v", evt.EntityType, err)
		return nil
	}

	logx.Infof("[SearchCache] 已失效缓存: type=%s, entity_id=%d, keys=%d",
		evt.EntityType, evt.EntityID, deleted)
	return nil
}
