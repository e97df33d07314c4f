// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"time"

	"community-platform/app/search/api/internal/cache"
	"community-platform/app/search/api/internal/config"
	"community-platform/app/search/engine"
	"community-platform/app/search/model"
	"community-platform/common/messaging"
	"community-platform/common/middleware"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
	"gorm.io/gorm"
)

type ServiceContext struct {
	Config config.Config

	DB *gorm.DB

	// 搜索引擎与存储
	Engine           *engine.Engine
	HistoryModel     *model.SearchHistoryModel
	InteractionModel *model.SearchInteractionModel

	// 消息客户端（可选，Enabled=false 时为 nil）
	Messaging *messaging.Client

	// 中间件
	Auth         rest.Middleware
	OptionalAuth rest.Middleware
	TraceID      rest.Middleware
}

func NewServiceContext(c config.Config) *ServiceContext {
	db, err := model.NewDB(c.MySQL)
	if err != nil {
		logx.Must(err)
	}

	historyModel := model.NewSearchHistoryModel(db)
	source := model.NewGormCandidateSource(db)

	eng := engine.NewEngine(c.Engine, source, historyModel).
		WithMetrics(engine.NewMetrics(c.MetricsNamespace))

	// 结果缓存（CacheTTLSeconds=0 时关闭）
	var resultCache *cache.RedisResultCache
	if c.CacheTTLSeconds > 0 {
		rds := redis.MustNewRedis(c.CacheRedis)
		resultCache = cache.NewRedisResultCache(rds, time.Duration(c.CacheTTLSeconds)*time.Second)
		eng = eng.WithCache(resultCache)
	}

	// 消息客户端：订阅实体变更事件，按类型失效结果缓存
	var msgClient *messaging.Client
	if c.Messaging.Enabled && resultCache != nil {
		cfg := messaging.DefaultConfig()
		cfg.ServiceName = c.Name
		cfg.Redis.Addr = c.Messaging.Addr
		cfg.Redis.Password = c.Messaging.Password
		cfg.Redis.DB = c.Messaging.DB

		msgClient, err = messaging.NewClient(cfg)
		if err != nil {
			// 缓存失效降级为纯 TTL，不阻塞服务启动
			logx.Errorf("[SearchAPI] 消息客户端初始化失败，缓存失效退化为 TTL: %v", err)
			msgClient = nil
		} else {
			cache.NewInvalidator(resultCache).Register(msgClient)
		}
	}

	return &ServiceContext{
		Config:           c,
		DB:               db,
		Engine:           eng,
		HistoryModel:     historyModel,
		InteractionModel: model.NewSearchInteractionModel(db),
		Messaging:        msgClient,
		Auth:             middleware.NewAuthMiddleware(c.Auth.AccessSecret).Handle,
		OptionalAuth:     middleware.NewOptionalAuthMiddleware(c.Auth.AccessSecret).Handle,
		TraceID:          middleware.TraceIDMiddleware,
	}
}
