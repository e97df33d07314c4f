package engine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== 内存桩 ====================

type fakeSource struct {
	mu      sync.Mutex
	cands   map[EntityType][]Candidate
	failOn  map[EntityType]error
	block   time.Duration // 模拟慢查询，期间响应 ctx 取消
	fetches int
}

func (s *fakeSource) FetchCandidates(ctx context.Context, t EntityType) ([]Candidate, error) {
	s.mu.Lock()
	s.fetches++
	block := s.block
	s.mu.Unlock()

	if block > 0 {
		select {
		case <-time.After(block):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := s.failOn[t]; err != nil {
		return nil, err
	}
	return s.cands[t], nil
}

type fakeHistory struct {
	mu        sync.Mutex
	records   []*HistoryRecord
	appendErr error
}

func (h *fakeHistory) Append(ctx context.Context, rec *HistoryRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.appendErr != nil {
		return h.appendErr
	}
	h.records = append(h.records, rec)
	return nil
}

func (h *fakeHistory) Suggest(ctx context.Context, keyword string, entityType EntityType,
	limit int) ([]Suggestion, error) {

	h.mu.Lock()
	defer h.mu.Unlock()

	type agg struct {
		freq     int64
		lastUsed int64
	}
	grouped := make(map[string]*agg)
	for _, rec := range h.records {
		if entityType != "" && rec.EntityType != entityType {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.QueryText), strings.ToLower(keyword)) {
			continue
		}
		a, ok := grouped[rec.QueryText]
		if !ok {
			a = &agg{}
			grouped[rec.QueryText] = a
		}
		a.freq++
		if rec.IssuedAt > a.lastUsed {
			a.lastUsed = rec.IssuedAt
		}
	}

	out := make([]Suggestion, 0, len(grouped))
	for text, a := range grouped {
		out = append(out, Suggestion{QueryText: text, Frequency: a.freq, LastUsed: a.lastUsed})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].LastUsed > out[j].LastUsed
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (h *fakeHistory) ClearByUser(ctx context.Context, userID uint64) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.records[:0]
	var deleted int64
	for _, rec := range h.records {
		if rec.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	h.records = kept
	return deleted, nil
}

func (h *fakeHistory) recordCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]RankedResult
	hits    int
}

func (c *fakeCache) key(t EntityType, k string) string { return string(t) + ":" + k }

func (c *fakeCache) Get(ctx context.Context, t EntityType, k string) ([]RankedResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	results, ok := c.entries[c.key(t, k)]
	if ok {
		c.hits++
	}
	return results, ok
}

func (c *fakeCache) Set(ctx context.Context, t EntityType, k string, results []RankedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string][]RankedResult)
	}
	c.entries[c.key(t, k)] = results
}

// ==================== 测试数据 ====================

func testSource() *fakeSource {
	return &fakeSource{
		cands: map[EntityType][]Candidate{
			EntityUser: {
				{ID: 1, Fields: map[string]string{"username": "jdoe", "first_name": "John", "last_name": "Doe"}, SortKey: 10},
			},
			EntityThread: {
				{ID: 1, Fields: map[string]string{"title": "django tips"}, Attrs: map[string]interface{}{"category": "tech"}, SortKey: 10},
				{ID: 2, Fields: map[string]string{"title": "django faq"}, Attrs: map[string]interface{}{"category": "tech"}, SortKey: 20},
			},
			EntityPost: {
				{ID: 1, Fields: map[string]string{"content": "great django answer"}, SortKey: 10},
			},
			EntityNews: {
				{ID: 1, Fields: map[string]string{"title": "django workshop announced"}, SortKey: 10},
			},
			EntityNotice: {
				{ID: 1, Fields: map[string]string{"title": "selling django book"}, SortKey: 10},
			},
		},
		failOn: map[EntityType]error{},
	}
}

func newTestEngine(source *fakeSource, history *fakeHistory) *Engine {
	return NewEngine(Config{}, source, history)
}

// ==================== 单类型搜索 ====================

func TestSearchUnknownTypeRejected(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	_, err := eng.Search(context.Background(), "activity", "django", nil, 1)
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestSearchEmptyQueryNoHistory(t *testing.T) {
	history := &fakeHistory{}
	eng := newTestEngine(testSource(), history)

	results, err := eng.Search(context.Background(), EntityThread, "   ", nil, 42)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, history.recordCount(), "空查询不得写历史")
}

func TestSearchAuthenticatedWritesHistoryOnce(t *testing.T) {
	history := &fakeHistory{}
	eng := newTestEngine(testSource(), history)

	results, err := eng.Search(context.Background(), EntityThread, "django", nil, 42)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	require.Equal(t, 1, history.recordCount())
	rec := history.records[0]
	assert.Equal(t, uint64(42), rec.UserID)
	assert.Equal(t, "django", rec.QueryText)
	assert.Equal(t, EntityThread, rec.EntityType)
	assert.Equal(t, 2, rec.ResultCount)
	assert.GreaterOrEqual(t, rec.ExecutionTimeMs, int64(0))
}

func TestSearchAnonymousNoHistory(t *testing.T) {
	history := &fakeHistory{}
	eng := newTestEngine(testSource(), history)

	results, err := eng.Search(context.Background(), EntityThread, "django", nil, 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Zero(t, history.recordCount(), "匿名搜索不得写历史")
}

func TestSearchHistoryFailureDoesNotFailSearch(t *testing.T) {
	history := &fakeHistory{appendErr: errors.New("db down")}
	eng := newTestEngine(testSource(), history)

	results, err := eng.Search(context.Background(), EntityThread, "django", nil, 42)
	require.NoError(t, err, "历史写失败不得影响搜索结果")
	assert.Len(t, results, 2)
}

func TestSearchFiltersAppliedSnapshot(t *testing.T) {
	history := &fakeHistory{}
	eng := newTestEngine(testSource(), history)

	_, err := eng.Search(context.Background(), EntityThread, "django",
		map[string]string{"category": "tech", "min_price": "5", "author": ""}, 42)
	require.NoError(t, err)

	require.Equal(t, 1, history.recordCount())
	// 快照只含对当前类型生效的非空过滤键
	assert.Equal(t, map[string]string{"category": "tech"}, history.records[0].FiltersApplied)
}

func TestSearchTimeoutNoHistory(t *testing.T) {
	source := testSource()
	source.block = 200 * time.Millisecond
	history := &fakeHistory{}

	eng := NewEngine(Config{RankTimeoutMs: 20}, source, history)

	_, err := eng.Search(context.Background(), EntityThread, "django", nil, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, history.recordCount(), "超时请求不得写历史")
}

func TestSearchFuzzyResultMarked(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	results, err := eng.Search(context.Background(), EntityUser, "jhon", nil, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, MatchFuzzy, results[0].MatchedVia)
	assert.Equal(t, uint64(1), results[0].EntityID)
}

// ==================== 结果缓存 ====================

func TestSearchCacheHitSkipsSource(t *testing.T) {
	source := testSource()
	cache := &fakeCache{}
	eng := newTestEngine(source, &fakeHistory{}).WithCache(cache)

	first, err := eng.Search(context.Background(), EntityThread, "django", nil, 0)
	require.NoError(t, err)

	second, err := eng.Search(context.Background(), EntityThread, "django", nil, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, source.fetches, "命中缓存后不得再查候选集")
}

func TestSearchCacheKeyVariesWithFilters(t *testing.T) {
	source := testSource()
	cache := &fakeCache{}
	eng := newTestEngine(source, &fakeHistory{}).WithCache(cache)

	_, err := eng.Search(context.Background(), EntityThread, "django", nil, 0)
	require.NoError(t, err)
	_, err = eng.Search(context.Background(), EntityThread, "django",
		map[string]string{"category": "tech"}, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, source.fetches, "过滤参数不同不得共用缓存")
}

// ==================== 多类型搜索 ====================

func TestMultiSearchDefaultExcludesPost(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	out, err := eng.MultiSearch(context.Background(), "django", nil, 0, 0)
	require.NoError(t, err)

	assert.Len(t, out.Results, len(DefaultMultiSearchTypes))
	_, hasPost := out.Results[EntityPost]
	assert.False(t, hasPost, "post 不在默认扇出集合中")
	assert.NotEmpty(t, out.Results[EntityThread])
}

func TestMultiSearchExplicitPost(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	out, err := eng.MultiSearch(context.Background(), "django",
		[]EntityType{EntityPost}, 0, 0)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Len(t, out.Results[EntityPost], 1)
}

func TestMultiSearchUnknownTypeRejectsWholeCall(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	_, err := eng.MultiSearch(context.Background(), "django",
		[]EntityType{EntityThread, "activity"}, 0, 0)
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestMultiSearchPartialFailure(t *testing.T) {
	source := testSource()
	source.failOn[EntityNews] = errors.New("news table unavailable")
	eng := newTestEngine(source, &fakeHistory{})

	out, err := eng.MultiSearch(context.Background(), "django", nil, 0, 0)
	require.NoError(t, err, "单类型失败不得拖垮整体调用")

	assert.Contains(t, out.Errors, EntityNews)
	_, hasNews := out.Results[EntityNews]
	assert.False(t, hasNews)
	assert.NotEmpty(t, out.Results[EntityThread], "其余类型结果不受影响")
}

func TestMultiSearchLimitPerType(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	out, err := eng.MultiSearch(context.Background(), "django",
		[]EntityType{EntityThread}, 1, 0)
	require.NoError(t, err)
	assert.Len(t, out.Results[EntityThread], 1)
}

func TestMultiSearchWritesHistoryPerType(t *testing.T) {
	history := &fakeHistory{}
	eng := newTestEngine(testSource(), history)

	_, err := eng.MultiSearch(context.Background(), "django", nil, 0, 42)
	require.NoError(t, err)

	// 默认集合中每个实际执行的类型各一条
	assert.Equal(t, len(DefaultMultiSearchTypes), history.recordCount())
	seen := make(map[EntityType]bool)
	for _, rec := range history.records {
		assert.False(t, seen[rec.EntityType], "同一类型不得重复记录")
		seen[rec.EntityType] = true
	}
}

// ==================== 搜索建议 ====================

func TestSuggestShortKeywordEmpty(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	suggestions, err := eng.Suggest(context.Background(), "d", "", 0)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestUnknownTypeRejected(t *testing.T) {
	eng := newTestEngine(testSource(), &fakeHistory{})

	_, err := eng.Suggest(context.Background(), "django", "activity", 0)
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestSuggestAggregatesByFrequencyThenRecency(t *testing.T) {
	history := &fakeHistory{records: []*HistoryRecord{
		{QueryText: "django tutorial", EntityType: EntityThread, UserID: 1, IssuedAt: 100},
		{QueryText: "django tutorial", EntityType: EntityThread, UserID: 2, IssuedAt: 200},
		{QueryText: "django forms", EntityType: EntityThread, UserID: 1, IssuedAt: 300},
		{QueryText: "python basics", EntityType: EntityThread, UserID: 1, IssuedAt: 400},
	}}
	eng := newTestEngine(testSource(), history)

	suggestions, err := eng.Suggest(context.Background(), "djan", "", 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// 频次降序：tutorial(2) 在 forms(1) 之前
	assert.Equal(t, "django tutorial", suggestions[0].QueryText)
	assert.Equal(t, int64(2), suggestions[0].Frequency)
	assert.Equal(t, int64(200), suggestions[0].LastUsed)
	assert.Equal(t, "django forms", suggestions[1].QueryText)
}

func TestSuggestTiesBrokenByRecency(t *testing.T) {
	history := &fakeHistory{records: []*HistoryRecord{
		{QueryText: "django old", EntityType: EntityThread, UserID: 1, IssuedAt: 100},
		{QueryText: "django new", EntityType: EntityThread, UserID: 1, IssuedAt: 500},
	}}
	eng := newTestEngine(testSource(), history)

	suggestions, err := eng.Suggest(context.Background(), "django", "", 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "django new", suggestions[0].QueryText)
}

// ==================== 历史管理 ====================

func TestClearHistory(t *testing.T) {
	history := &fakeHistory{}
	eng := newTestEngine(testSource(), history)

	for i := 0; i < 3; i++ {
		_, err := eng.Search(context.Background(), EntityThread, "django", nil, 42)
		require.NoError(t, err)
	}
	_, err := eng.Search(context.Background(), EntityThread, "django", nil, 7)
	require.NoError(t, err)

	deleted, err := eng.ClearHistory(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	// 其他用户的历史保留
	assert.Equal(t, 1, history.recordCount())

	deleted, err = eng.ClearHistory(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, deleted, "重复清空应返回 0")
}
