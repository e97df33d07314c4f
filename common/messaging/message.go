/**
 * @projectName: community-platform
 * @package: messaging
 * @className: message
 * @description: 通用消息格式定义
 * @version: 1.0
 *
 * 本文件定义了服务间消息通信的通用格式和主题常量。
 * 所有通过消息队列通信的服务都应使用这些定义。
 */

package messaging

import (
	"encoding/json"
	"time"
)

// ==================== 主题常量 ====================

const (
	// TopicEntityChanged 实体变更事件
	// 消息来源: 各内容服务（用户/帖子/新闻/布告）写路径
	// 消费者: 搜索服务（按类型失效结果缓存）
	// 内层数据: EntityChangedEvent
	TopicEntityChanged = "search.entity_changed"
)

// ==================== 事件结构 ====================

// EntityChangedEvent 实体变更事件
// 任何实体的创建/更新/删除都会发布一条，搜索侧据此失效缓存
//
// 消息示例:
//
//	{"entity_type":"thread","entity_id":123,"changed_at":1756250000}
type EntityChangedEvent struct {
	// EntityType 变更的实体类型
	// 可选值: user | thread | post | news | notice
	EntityType string `json:"entity_type"`

	// EntityID 变更的实体ID，0 表示该类型整体变更（如批量导入）
	EntityID uint64 `json:"entity_id"`

	// ChangedAt 变更时间（Unix 秒）
	ChangedAt int64 `json:"changed_at"`
}

// NewEntityChangedEvent 创建实体变更事件
func NewEntityChangedEvent(entityType string, entityID uint64) *EntityChangedEvent {
	return &EntityChangedEvent{
		EntityType: entityType,
		EntityID:   entityID,
		ChangedAt:  time.Now().Unix(),
	}
}

// Marshal 序列化为消息负载
func (e *EntityChangedEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEntityChangedEvent 从消息负载反序列化
func UnmarshalEntityChangedEvent(payload []byte) (*EntityChangedEvent, error) {
	var evt EntityChangedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}
