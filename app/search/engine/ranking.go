package engine

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// ==================== 分词 ====================

// tokenize 简单分词：小写化后按非字母数字切分
//
// 中英文混合场景下，连续的 CJK 字符会作为一个 token，
// 与 MySQL LIKE 降级方案的子串语义保持一致的召回下限
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// termCounts 统计词频
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// ==================== 全文打分 ====================

// fulltextScore 加权词重合打分
//
// 对每个查询词、每个字段：命中一次累加该字段权重（乘以词频），
// 分数随命中词数量与字段权重单调递增，允许并列
func fulltextScore(d *Descriptor, cand *Candidate, queryTokens []string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	score := 0.0
	for _, spec := range d.Fields {
		text, ok := cand.Fields[spec.Name]
		if !ok || text == "" {
			continue
		}
		counts := termCounts(tokenize(text))
		for _, qt := range queryTokens {
			if occ := counts[qt]; occ > 0 {
				score += spec.Weight * float64(occ)
			}
		}
	}
	return score
}

// ==================== 相似度兜底 ====================

// similarity 编辑距离归一化相似度，范围 [0,1]
//
// sim = 1 - lev(a,b) / max(len(a),len(b))
// "jhon" vs "john" => 1 - 2/4 = 0.5，可越过 0.3 阈值召回拼写错误
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= maxLen {
		return 0
	}
	return 1 - float64(dist)/float64(maxLen)
}

// fuzzyScore 模糊兜底打分
//
// 仅在 FuzzyFields（名称类字段）上计算：查询串分别与字段整体值、
// 字段的每个分词比较，取全部相似度的最大值
func fuzzyScore(d *Descriptor, cand *Candidate, query string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}

	best := 0.0
	for _, name := range d.FuzzyFields {
		text, ok := cand.Fields[name]
		if !ok || text == "" {
			continue
		}
		lowered := strings.ToLower(text)
		if s := similarity(query, lowered); s > best {
			best = s
		}
		for _, tok := range tokenize(text) {
			if s := similarity(query, tok); s > best {
				best = s
			}
		}
	}
	return best
}

// ==================== 排序 ====================

// scoredCandidate 打分后的候选，排序与过滤之间的中间形态
// 保留候选指针，过滤组合器需要访问 Attrs
type scoredCandidate struct {
	cand  *Candidate
	score float64
	mode  MatchMode
}

// rankCandidates 对候选集打分排序
//
// 流程：
//  1. 全文加权打分，保留 score > 0 的候选
//  2. 全文零命中时触发兜底：在模糊字段上做相似度打分，
//     保留相似度超过阈值的候选（兜底只在零结果时触发，不做混合打分）
//  3. 排序：score 降序 -> SortKey（次级键，如创建时间）降序 -> ID 升序
//
// 同一数据快照下输出完全确定，重复查询结果逐字节一致
func rankCandidates(d *Descriptor, cands []Candidate, query string, fuzzyThreshold float64) []scoredCandidate {
	queryTokens := tokenize(query)

	scored := make([]scoredCandidate, 0, len(cands))
	for i := range cands {
		if score := fulltextScore(d, &cands[i], queryTokens); score > 0 {
			scored = append(scored, scoredCandidate{cand: &cands[i], score: score, mode: MatchFulltext})
		}
	}

	// 兜底：全文零命中 -> 相似度匹配（容错拼写错误）
	if len(scored) == 0 {
		for i := range cands {
			if sim := fuzzyScore(d, &cands[i], query); sim > fuzzyThreshold {
				scored = append(scored, scoredCandidate{cand: &cands[i], score: sim, mode: MatchFuzzy})
			}
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].cand.SortKey != scored[j].cand.SortKey {
			return scored[i].cand.SortKey > scored[j].cand.SortKey
		}
		return scored[i].cand.ID < scored[j].cand.ID
	})

	return scored
}

// toRankedResult 打分候选转结果
func (s *scoredCandidate) toRankedResult(t EntityType) RankedResult {
	return RankedResult{
		EntityID:   s.cand.ID,
		EntityType: t,
		Score:      s.score,
		MatchedVia: s.mode,
		Fields:     s.cand.Fields,
		SortKey:    s.cand.SortKey,
	}
}
