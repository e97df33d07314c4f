package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threadCandidates() []Candidate {
	return []Candidate{
		{
			ID: 1,
			Fields: map[string]string{
				"title":       "Django deployment guide",
				"content":     "Step by step django deployment with nginx",
				"author_name": "alice",
			},
			SortKey: 100,
		},
		{
			ID: 2,
			Fields: map[string]string{
				"title":       "Python tips",
				"content":     "Some useful python tricks, also mentions django once",
				"author_name": "bob",
			},
			SortKey: 200,
		},
		{
			ID: 3,
			Fields: map[string]string{
				"title":       "Cooking club",
				"content":     "Weekly cooking sessions",
				"author_name": "carol",
			},
			SortKey: 300,
		},
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"django", "deployment", "2024"}, tokenize("Django, deployment! 2024"))
	assert.Empty(t, tokenize("  ...  "))
}

func TestFulltextTitleOutweighsContent(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	cands := threadCandidates()

	scored := rankCandidates(d, cands, "django", 0.3)
	require.Len(t, scored, 2, "标题命中和正文命中都应召回")

	// 标题命中（权重 A + 正文也命中）排在纯正文命中之前
	assert.Equal(t, uint64(1), scored[0].cand.ID)
	assert.Equal(t, uint64(2), scored[1].cand.ID)
	assert.Equal(t, MatchFulltext, scored[0].mode)
	assert.Greater(t, scored[0].score, scored[1].score)
}

func TestFulltextMultiTermAccumulates(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	cands := threadCandidates()

	single := rankCandidates(d, cands, "deployment", 0.3)
	double := rankCandidates(d, cands, "django deployment", 0.3)

	require.NotEmpty(t, single)
	require.NotEmpty(t, double)
	assert.Equal(t, uint64(1), double[0].cand.ID)
	assert.Greater(t, double[0].score, single[0].score, "双词命中分数应高于单词命中")
}

func TestSimilarity(t *testing.T) {
	// "jhon" vs "john": 编辑距离 2，长度 4 => 0.5
	assert.InDelta(t, 0.5, similarity("jhon", "john"), 1e-9)
	assert.Equal(t, 1.0, similarity("django", "django"))
	assert.Equal(t, 0.0, similarity("", "john"))
	assert.Equal(t, 0.0, similarity("abc", "xyz"))
}

func TestFuzzyFallbackOnMisspelling(t *testing.T) {
	d, _ := DescriptorFor(EntityUser)
	cands := []Candidate{
		{
			ID: 1,
			Fields: map[string]string{
				"username":   "jdoe",
				"first_name": "John",
				"last_name":  "Doe",
			},
			SortKey: 10,
		},
		{
			ID: 2,
			Fields: map[string]string{
				"username":   "msmith",
				"first_name": "Mary",
				"last_name":  "Smith",
			},
			SortKey: 20,
		},
	}

	scored := rankCandidates(d, cands, "jhon", 0.3)
	require.Len(t, scored, 1, "只有 John 应越过相似度阈值")
	assert.Equal(t, uint64(1), scored[0].cand.ID)
	assert.Equal(t, MatchFuzzy, scored[0].mode)
	assert.InDelta(t, 0.5, scored[0].score, 1e-9)
}

func TestFuzzyNeverBlendsWithFulltext(t *testing.T) {
	d, _ := DescriptorFor(EntityUser)
	cands := []Candidate{
		{ID: 1, Fields: map[string]string{"username": "john"}, SortKey: 10},
		// 与查询词相似但不完全相同，全文不命中
		{ID: 2, Fields: map[string]string{"username": "johm"}, SortKey: 20},
	}

	scored := rankCandidates(d, cands, "john", 0.3)
	require.Len(t, scored, 1, "全文有命中时不应追加模糊结果")
	assert.Equal(t, MatchFulltext, scored[0].mode)
	assert.Equal(t, uint64(1), scored[0].cand.ID)
}

func TestRankOrderDeterministic(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	cands := []Candidate{
		// 三条全文分数相同
		{ID: 3, Fields: map[string]string{"title": "go meetup"}, SortKey: 100},
		{ID: 1, Fields: map[string]string{"title": "go meetup"}, SortKey: 300},
		{ID: 2, Fields: map[string]string{"title": "go meetup"}, SortKey: 300},
	}

	first := rankCandidates(d, cands, "go", 0.3)
	require.Len(t, first, 3)

	// SortKey 降序，同 SortKey 按 ID 升序
	assert.Equal(t, uint64(1), first[0].cand.ID)
	assert.Equal(t, uint64(2), first[1].cand.ID)
	assert.Equal(t, uint64(3), first[2].cand.ID)

	// 重复执行结果逐项一致
	second := rankCandidates(d, cands, "go", 0.3)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].cand.ID, second[i].cand.ID)
		assert.Equal(t, first[i].score, second[i].score)
	}
}

func TestRankEmptyQueryTokens(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	scored := rankCandidates(d, threadCandidates(), "!!!", 0.3)
	assert.Empty(t, scored, "无有效分词也无相似命中时应为空")
}

func TestScoreIsCaseInsensitive(t *testing.T) {
	d, _ := DescriptorFor(EntityThread)
	cands := threadCandidates()

	lower := rankCandidates(d, cands, "django", 0.3)
	upper := rankCandidates(d, cands, "DJANGO", 0.3)

	require.Equal(t, len(lower), len(upper))
	for i := range lower {
		assert.Equal(t, lower[i].cand.ID, upper[i].cand.ID)
		assert.Equal(t, lower[i].score, upper[i].score)
	}
}
