package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredThreads() []scoredCandidate {
	cands := []Candidate{
		{
			ID:     1,
			Fields: map[string]string{"title": "django tips"},
			Attrs: map[string]interface{}{
				"category":    "tech",
				"author_name": "Alice Zhang",
				"is_pinned":   true,
				"vote_count":  int64(10),
				"created_at":  int64(1000),
			},
			SortKey: 1000,
		},
		{
			ID:     2,
			Fields: map[string]string{"title": "django faq"},
			Attrs: map[string]interface{}{
				"category":    "tech",
				"author_name": "bob",
				"is_pinned":   false,
				"vote_count":  int64(0),
				"created_at":  int64(2000),
			},
			SortKey: 2000,
		},
		{
			ID:     3,
			Fields: map[string]string{"title": "django jobs"},
			Attrs: map[string]interface{}{
				"category":    "career",
				"author_name": "carol",
				"is_pinned":   false,
				"vote_count":  int64(5),
				"created_at":  int64(3000),
			},
			SortKey: 3000,
		},
	}

	scored := make([]scoredCandidate, 0, len(cands))
	for i := range cands {
		scored = append(scored, scoredCandidate{cand: &cands[i], score: 1.0, mode: MatchFulltext})
	}
	return scored
}

func idsOf(scored []scoredCandidate) []uint64 {
	ids := make([]uint64, 0, len(scored))
	for _, sc := range scored {
		ids = append(ids, sc.cand.ID)
	}
	return ids
}

func TestFilterEqualsCategory(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	out := applyFilters(d, scoredThreads(), map[string]string{"category": "tech"})
	assert.Equal(t, []uint64{1, 2}, idsOf(out))
}

func TestFilterUndeclaredKeyIgnored(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	// min_price 未在 thread 上声明：忽略而非报错或清空结果
	out := applyFilters(d, scoredThreads(), map[string]string{"min_price": "100"})
	assert.Equal(t, []uint64{1, 2, 3}, idsOf(out))
}

func TestFilterEmptyValueSkipped(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	out := applyFilters(d, scoredThreads(), map[string]string{"category": ""})
	assert.Equal(t, []uint64{1, 2, 3}, idsOf(out))
}

func TestFilterContainsCaseInsensitive(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	out := applyFilters(d, scoredThreads(), map[string]string{"author": "alice"})
	assert.Equal(t, []uint64{1}, idsOf(out))

	out = applyFilters(d, scoredThreads(), map[string]string{"author": "ZHANG"})
	assert.Equal(t, []uint64{1}, idsOf(out))
}

func TestFilterRangeBoundsInclusive(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)

	// 下界取闭区间：vote_count=5 的候选在 min_votes=5 时保留
	out := applyFilters(d, scoredThreads(), map[string]string{"min_votes": "5"})
	assert.Equal(t, []uint64{1, 3}, idsOf(out))

	out = applyFilters(d, scoredThreads(), map[string]string{"max_votes": "5"})
	assert.Equal(t, []uint64{2, 3}, idsOf(out))

	out = applyFilters(d, scoredThreads(), map[string]string{"min_votes": "5", "max_votes": "5"})
	assert.Equal(t, []uint64{3}, idsOf(out))
}

func TestFilterDateRange(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)

	out := applyFilters(d, scoredThreads(), map[string]string{
		"date_from": "2000",
		"date_to":   "3000",
	})
	assert.Equal(t, []uint64{2, 3}, idsOf(out))
}

func TestFilterExists(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)

	// has_votes=true: vote_count 非零
	out := applyFilters(d, scoredThreads(), map[string]string{"has_votes": "true"})
	assert.Equal(t, []uint64{1, 3}, idsOf(out))

	out = applyFilters(d, scoredThreads(), map[string]string{"has_votes": "false"})
	assert.Equal(t, []uint64{2}, idsOf(out))
}

func TestFilterEqualsBool(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	out := applyFilters(d, scoredThreads(), map[string]string{"is_pinned": "true"})
	assert.Equal(t, []uint64{1}, idsOf(out))
}

func TestFilterAndSemantics(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	out := applyFilters(d, scoredThreads(), map[string]string{
		"category":  "tech",
		"has_votes": "true",
	})
	assert.Equal(t, []uint64{1}, idsOf(out))
}

func TestFilterPreservesOrder(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	scored := scoredThreads()
	// 人为打乱输入顺序，过滤不得重排
	scored[0], scored[2] = scored[2], scored[0]

	out := applyFilters(d, scored, map[string]string{"category": "tech"})
	assert.Equal(t, []uint64{2, 1}, idsOf(out))
}

func TestFilterInvalidValueExcludes(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	// 数值解析失败 -> 谓词不成立 -> 候选被过滤
	out := applyFilters(d, scoredThreads(), map[string]string{"min_votes": "abc"})
	require.Empty(t, out)
}
