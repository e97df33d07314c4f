// Package engine 站内多实体搜索核心
//
// 本包提供与存储无关的排序搜索能力，包括：
// - 实体搜索描述符（字段权重、模糊字段、过滤规则静态表）
// - 加权全文打分 + 相似度兜底（容错拼写错误）
// - 结构化过滤组合（AND 语义，未声明的过滤键静默忽略）
// - 多实体类型扇出搜索
// - 搜索历史记录与搜索建议
//
// 排序打分在进程内完成，底层存储只需提供"按类型取回候选集"的能力，
// 便于单元测试与存储替换。
package engine

import (
	"context"
	"errors"
	"time"
)

// ==================== 错误定义 ====================

var (
	ErrUnknownEntityType = errors.New("未知的搜索实体类型")
	ErrFetchCandidates   = errors.New("候选集查询失败")
)

// ==================== 实体类型 ====================

// EntityType 可搜索实体类型
type EntityType string

const (
	EntityUser   EntityType = "user"   // 用户
	EntityThread EntityType = "thread" // 论坛主题帖
	EntityPost   EntityType = "post"   // 帖子回复
	EntityNews   EntityType = "news"   // 校园新闻
	EntityNotice EntityType = "notice" // 布告栏信息（二手/启事）
)

// AllEntityTypes 全部实体类型（顺序固定，保证多类型响应的键序稳定）
var AllEntityTypes = []EntityType{EntityUser, EntityThread, EntityPost, EntityNews, EntityNotice}

// DefaultMultiSearchTypes 多类型搜索的默认扇出集合
//
// ⚠️ 不含 post：回复数量远大于其他实体，默认聚合搜索时噪音过大，
// 需要调用方显式指定 types=post 才会搜索回复
var DefaultMultiSearchTypes = []EntityType{EntityUser, EntityThread, EntityNews, EntityNotice}

// ParseEntityType 解析实体类型字符串
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityUser, EntityThread, EntityPost, EntityNews, EntityNotice:
		return EntityType(s), nil
	}
	return "", ErrUnknownEntityType
}

// ==================== 匹配方式 ====================

// MatchMode 命中方式
type MatchMode string

const (
	MatchFulltext MatchMode = "fulltext" // 全文加权命中
	MatchFuzzy    MatchMode = "fuzzy"    // 相似度兜底命中
)

// ==================== 候选与结果 ====================

// Candidate 参与排序的候选实体
//
// 由 CandidateSource 从存储层取回并填充：
//   - Fields: 参与全文/模糊匹配的文本字段（字段名与描述符对齐）
//   - Attrs:  参与结构化过滤的属性（string/int64/float64/bool）
//   - SortKey: 次级排序键（通常为 created_at 时间戳），同分时降序
type Candidate struct {
	ID      uint64
	Fields  map[string]string
	Attrs   map[string]interface{}
	SortKey int64
}

// RankedResult 排序后的搜索结果（不落库）
type RankedResult struct {
	EntityID   uint64            `json:"entity_id"`
	EntityType EntityType        `json:"entity_type"`
	Score      float64           `json:"score"`
	MatchedVia MatchMode         `json:"matched_via"`
	Fields     map[string]string `json:"fields,omitempty"` // 展示用字段快照
	SortKey    int64             `json:"sort_key"`
}

// MultiSearchResult 多类型搜索结果
//
// Results 中每个请求的类型都有键，零命中也会出现空列表；
// 某个类型查询失败时记入 Errors，不影响其他类型的结果（部分失败语义）
type MultiSearchResult struct {
	Results map[EntityType][]RankedResult `json:"results"`
	Errors  map[EntityType]string         `json:"errors,omitempty"`
}

// ==================== 历史与建议 ====================

// HistoryRecord 一次已执行搜索的历史记录（追加写，不可变）
type HistoryRecord struct {
	QueryText       string
	EntityType      EntityType
	UserID          uint64 // 0 = 匿名（不会落库）
	IssuedAt        int64  // Unix 秒
	ResultCount     int
	ExecutionTimeMs int64             // 仅统计排序+过滤耗时，不含序列化
	FiltersApplied  map[string]string // 生效时的过滤参数快照
}

// Suggestion 搜索建议条目（按历史频次聚合，按需计算，不单独存储）
type Suggestion struct {
	QueryText string `json:"query_text"`
	Frequency int64  `json:"frequency"`
	LastUsed  int64  `json:"last_used"` // Unix 秒
}

// ==================== 协作方接口 ====================

// CandidateSource 候选集来源
//
// 排序需要看到完整候选集后才能截断，因此这里一次取回全量可搜索候选，
// 不在存储层分页（读路径的一致性语义由存储层自身保证）
type CandidateSource interface {
	FetchCandidates(ctx context.Context, entityType EntityType) ([]Candidate, error)
}

// HistoryStore 搜索历史持久化
type HistoryStore interface {
	// Append 追加一条历史记录（只插入，永不更新）
	Append(ctx context.Context, rec *HistoryRecord) error

	// Suggest 按历史频次聚合搜索建议
	// keyword 做大小写不敏感的子串匹配；entityType 为空表示不限类型
	Suggest(ctx context.Context, keyword string, entityType EntityType, limit int) ([]Suggestion, error)

	// ClearByUser 删除指定用户的全部历史，返回删除的行数
	ClearByUser(ctx context.Context, userID uint64) (int64, error)
}

// ResultCache 搜索结果读穿缓存（可选）
//
// Key 由引擎根据 (实体类型, 查询词, 过滤参数) 计算；
// 实体数据变更时通过失效钩子按类型清除（见 api/internal/cache）
type ResultCache interface {
	Get(ctx context.Context, entityType EntityType, key string) ([]RankedResult, bool)
	Set(ctx context.Context, entityType EntityType, key string, results []RankedResult)
}

// ==================== 引擎配置 ====================

// Config 引擎配置
//
// 阈值全部走配置注入而非包级常量，便于测试替换
type Config struct {
	// FuzzyThreshold 模糊兜底的相似度下限，(0,1]
	FuzzyThreshold float64 `json:",default=0.3"`

	// DefaultLimitPerType 多类型搜索每类默认返回条数
	DefaultLimitPerType int `json:",default=5"`

	// SuggestLimit 搜索建议默认返回条数
	SuggestLimit int `json:",default=10"`

	// SuggestMinLength 搜索建议最短输入长度（按字符计），低于此长度直接返回空
	SuggestMinLength int `json:",default=2"`

	// RankTimeoutMs 单次排序+过滤的执行预算（毫秒），超时请求失败且不写历史
	RankTimeoutMs int64 `json:",default=2000"`
}

// fillDefaults 补齐零值配置
func (c *Config) fillDefaults() {
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		c.FuzzyThreshold = 0.3
	}
	if c.DefaultLimitPerType <= 0 {
		c.DefaultLimitPerType = 5
	}
	if c.SuggestLimit <= 0 {
		c.SuggestLimit = 10
	}
	if c.SuggestMinLength <= 0 {
		c.SuggestMinLength = 2
	}
	if c.RankTimeoutMs <= 0 {
		c.RankTimeoutMs = 2000
	}
}

// RankTimeout 执行预算
func (c *Config) RankTimeout() time.Duration {
	return time.Duration(c.RankTimeoutMs) * time.Millisecond
}
