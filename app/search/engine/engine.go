package engine

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/singleflight"
)

// ==================== 搜索引擎 ====================

// Engine 多实体排序搜索引擎
//
// 除追加写的历史存储外，引擎自身无跨调用状态；
// 每次搜索都是一次性的请求/响应，无多步协议
type Engine struct {
	cfg     Config
	source  CandidateSource
	history HistoryStore
	cache   ResultCache // 可选，nil 表示不启用读穿缓存
	metrics *Metrics    // 可选

	// singleflight 合并并发的相同查询，防止缓存击穿
	sfGroup singleflight.Group
}

// NewEngine 创建搜索引擎
func NewEngine(cfg Config, source CandidateSource, history HistoryStore) *Engine {
	cfg.fillDefaults()
	return &Engine{
		cfg:     cfg,
		source:  source,
		history: history,
	}
}

// WithCache 启用结果缓存
func (e *Engine) WithCache(c ResultCache) *Engine {
	e.cache = c
	return e
}

// WithMetrics 启用指标上报
func (e *Engine) WithMetrics(m *Metrics) *Engine {
	e.metrics = m
	return e
}

// ==================== 单类型搜索 ====================

// Search 在单个实体类型上执行排序搜索
//
// 流程：
//  1. 校验实体类型（未知类型是调用方错误，直接拒绝）
//  2. 空查询直接返回空结果，不写历史
//  3. 取候选集 -> 打分排序 -> 过滤（整体受执行预算约束）
//  4. 认证用户则追加历史记录（尽力而为：失败只记日志，不影响搜索结果）
//
// userID = 0 表示匿名搜索，匿名搜索不落历史
func (e *Engine) Search(ctx context.Context, entityType EntityType, queryText string,
	filters map[string]string, userID uint64) ([]RankedResult, error) {

	desc, ok := DescriptorFor(entityType)
	if !ok {
		return nil, ErrUnknownEntityType
	}

	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return []RankedResult{}, nil
	}

	start := time.Now()
	results, err := e.rankAndFilter(ctx, desc, queryText, filters)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.RecordSearch(entityType, elapsed, err)
	}
	if err != nil {
		return nil, err
	}

	// 历史是副作用而非单独调用：搜索本身是主契约，历史写失败不回滚
	if userID > 0 {
		e.recordHistory(ctx, &HistoryRecord{
			QueryText:       queryText,
			EntityType:      entityType,
			UserID:          userID,
			IssuedAt:        time.Now().Unix(),
			ResultCount:     len(results),
			ExecutionTimeMs: elapsed.Milliseconds(),
			FiltersApplied:  appliedFilters(desc, filters),
		})
	}

	return results, nil
}

// rankAndFilter 排序+过滤主体，受执行预算约束
//
// 超时时整个请求失败且不写历史（调用方在 Search 中跳过历史落库）
func (e *Engine) rankAndFilter(ctx context.Context, desc *Descriptor, queryText string,
	filters map[string]string) ([]RankedResult, error) {

	ctx, cancel := context.WithTimeout(ctx, e.cfg.RankTimeout())
	defer cancel()

	key := cacheKey(queryText, filters)

	// 1. 读缓存
	if e.cache != nil {
		if cached, hit := e.cache.Get(ctx, desc.Type, key); hit {
			if e.metrics != nil {
				e.metrics.RecordCacheHit(desc.Type)
			}
			return cached, nil
		}
	}

	// 2. singleflight 合并相同查询的并发计算
	v, err, _ := e.sfGroup.Do(string(desc.Type)+":"+key, func() (interface{}, error) {
		return e.compute(ctx, desc, queryText, filters, key)
	})
	if err != nil {
		return nil, err
	}
	return v.([]RankedResult), nil
}

// compute 取候选集并完成打分、过滤、缓存回填
func (e *Engine) compute(ctx context.Context, desc *Descriptor, queryText string,
	filters map[string]string, key string) ([]RankedResult, error) {

	cands, err := e.source.FetchCandidates(ctx, desc.Type)
	if err != nil {
		logx.WithContext(ctx).Errorf("[SearchEngine] 候选集查询失败: type=%s, err=%v", desc.Type, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored := rankCandidates(desc, cands, queryText, e.cfg.FuzzyThreshold)
	scored = applyFilters(desc, scored, filters)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]RankedResult, 0, len(scored))
	for i := range scored {
		results = append(results, scored[i].toRankedResult(desc.Type))
	}

	if len(results) > 0 && results[0].MatchedVia == MatchFuzzy && e.metrics != nil {
		e.metrics.RecordFuzzyFallback(desc.Type)
	}

	if e.cache != nil {
		e.cache.Set(ctx, desc.Type, key, results)
	}

	return results, nil
}

// ==================== 多类型搜索 ====================

// MultiSearch 将同一查询扇出到多个实体类型
//
// 约定：
//   - types 为空时使用默认集合（不含 post，需显式请求）
//   - 显式请求了未知类型 -> 整体拒绝（区别于未声明过滤键的静默忽略）
//   - 单个类型失败不拖垮其他类型（部分失败语义）
//   - 不做跨类型分数比较：各类型语料与权重不同，分数不可比
//   - 每个实际执行的类型各记录一条历史（在 Search 内部完成）
func (e *Engine) MultiSearch(ctx context.Context, queryText string, types []EntityType,
	limitPerType int, userID uint64) (*MultiSearchResult, error) {

	if len(types) == 0 {
		types = DefaultMultiSearchTypes
	}
	for _, t := range types {
		if _, ok := DescriptorFor(t); !ok {
			return nil, ErrUnknownEntityType
		}
	}
	if limitPerType <= 0 {
		limitPerType = e.cfg.DefaultLimitPerType
	}

	out := &MultiSearchResult{
		Results: make(map[EntityType][]RankedResult, len(types)),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, t := range types {
		wg.Add(1)
		go func(t EntityType) {
			defer wg.Done()

			results, err := e.Search(ctx, t, queryText, nil, userID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// 失败类型单独上报，其余类型的结果不受影响
				logx.WithContext(ctx).Errorf("[SearchEngine] 多类型搜索单类型失败: type=%s, err=%v", t, err)
				if out.Errors == nil {
					out.Errors = make(map[EntityType]string)
				}
				out.Errors[t] = err.Error()
				return
			}
			if len(results) > limitPerType {
				results = results[:limitPerType]
			}
			out.Results[t] = results
		}(t)
	}
	wg.Wait()

	return out, nil
}

// ==================== 搜索建议 ====================

// Suggest 基于历史频次的搜索建议
//
// 匹配规则沿用线上行为：对历史 query_text 做大小写不敏感的子串匹配
// （字段名叫 prefix 但语义是 contains，属于已知的命名不一致，保持现状）
func (e *Engine) Suggest(ctx context.Context, keyword string, entityType EntityType,
	limit int) ([]Suggestion, error) {

	keyword = strings.TrimSpace(keyword)
	// 过短输入直接返回空列表：避免病态的全表扫描，也不算错误
	if len([]rune(keyword)) < e.cfg.SuggestMinLength {
		return []Suggestion{}, nil
	}

	if entityType != "" {
		if _, ok := DescriptorFor(entityType); !ok {
			return nil, ErrUnknownEntityType
		}
	}
	if limit <= 0 {
		limit = e.cfg.SuggestLimit
	}

	return e.history.Suggest(ctx, keyword, entityType, limit)
}

// ==================== 历史管理 ====================

// ClearHistory 清空指定用户的搜索历史，返回删除条数
func (e *Engine) ClearHistory(ctx context.Context, userID uint64) (int64, error) {
	return e.history.ClearByUser(ctx, userID)
}

// recordHistory 尽力而为的历史落库
func (e *Engine) recordHistory(ctx context.Context, rec *HistoryRecord) {
	if err := e.history.Append(ctx, rec); err != nil {
		// 历史是遥测数据：写失败只记日志，绝不让搜索请求失败
		logx.WithContext(ctx).Errorf("[SearchEngine] 历史记录写入失败: query=%s, type=%s, err=%v",
			rec.QueryText, rec.EntityType, err)
		if e.metrics != nil {
			e.metrics.RecordHistoryError()
		}
	}
}

// ==================== 工具函数 ====================

// appliedFilters 取出对当前类型实际生效的过滤参数快照（回显到历史记录）
func appliedFilters(d *Descriptor, filters map[string]string) map[string]string {
	if len(filters) == 0 {
		return nil
	}
	out := make(map[string]string)
	for k, v := range filters {
		if v == "" {
			continue
		}
		if d.ruleFor(k) != nil {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// cacheKey 由查询词与过滤参数生成稳定缓存键
func cacheKey(queryText string, filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if v != "" {
			keys = append(keys, k+"="+v)
		}
	}
	sort.Strings(keys)

	h := sha1.New()
	h.Write([]byte(queryText))
	for _, kv := range keys {
		h.Write([]byte{0})
		h.Write([]byte(kv))
	}
	return hex.EncodeToString(h.Sum(nil))
}
