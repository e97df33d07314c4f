// ============================================================================
// 缓存失效事件发布脚本
// ============================================================================
//
// 用途：手动发布实体变更事件，触发搜索结果缓存失效。
//       内容服务补数据或批量导入后执行一次即可。
// 运行：go run tools/invalidatecache/main.go -type thread -addr 127.0.0.1:6379
//
// ============================================================================

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"community-platform/common/messaging"
)

var (
	entityType = flag.String("type", "", "实体类型: user | thread | post | news | notice")
	entityID   = flag.Uint64("id", 0, "实体ID，0 表示该类型整体变更")
	addr       = flag.String("addr", "127.0.0.1:6379", "Redis 地址")
	password   = flag.String("password", "", "Redis 密码")
	db         = flag.Int("db", 0, "Redis DB")
)

func main() {
	flag.Parse()

	if *entityType == "" {
		fmt.Println("必须指定 -type")
		flag.Usage()
		os.Exit(1)
	}

	cfg := messaging.DefaultConfig()
	cfg.ServiceName = "invalidate-cache-cli"
	cfg.Redis.Addr = *addr
	cfg.Redis.Password = *password
	cfg.Redis.DB = *db

	client, err := messaging.NewClient(cfg)
	if err != nil {
		fmt.Printf("连接消息中间件失败: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	evt := messaging.NewEntityChangedEvent(*entityType, *entityID)
	if err := client.PublishEntityChanged(context.Background(), evt); err != nil {
		fmt.Printf("发布事件失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("已发布实体变更事件: type=%s, id=%d, topic=%s\n",
		evt.EntityType, evt.EntityID, messaging.TopicEntityChanged)
}
