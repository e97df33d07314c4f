package main

import (
	"context"
	"flag"
	"fmt"

	"community-platform/app/search/api/internal/config"
	"community-platform/app/search/api/internal/handler"
	"community-platform/app/search/api/internal/svc"
	"community-platform/common/response"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/search-api.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// ============================================================================
	// 重要：设置全局错误处理器（必须在 server.Start() 之前）
	// ============================================================================
	response.SetupGlobalErrorHandler()
	// ============================================================================

	// 1. 加载配置文件
	var c config.Config
	conf.MustLoad(*configFile, &c)

	// 2. 创建 REST 服务器
	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	// 3. 初始化服务上下文
	ctx := svc.NewServiceContext(c)

	// 4. 启动缓存失效消费（可选）
	if ctx.Messaging != nil {
		defer ctx.Messaging.Close()
		threading.GoSafe(func() {
			if err := ctx.Messaging.Run(context.Background()); err != nil {
				logx.Errorf("消息路由退出: %v", err)
			}
		})
	}

	// 5. 注册路由处理器
	handler.RegisterHandlers(server, ctx)

	// 6. 启动服务
	fmt.Printf("Starting search-api server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}

// 搜索服务 API 入口
// 说明：
//   search-api 是站内搜索的 HTTP 接口层，负责：
//   - 单类型/多类型排序搜索
//   - 搜索建议（基于历史频次）
//   - 搜索历史与点击上报
//
// 启动命令：
//   go run search.go -f etc/search-api.yaml
