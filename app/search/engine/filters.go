package engine

import (
	"strconv"
	"strings"
)

// ==================== 过滤组合器 ====================
//
// 职责：在排序结果之上做声明式过滤，不感知打分细节，也不改变排序。
// 所有生效的过滤条件取 AND；当前实体类型未声明的过滤键静默忽略
// （兼容新增的前端过滤字段，旧服务端不因陌生参数整体报错）。

// applyFilters 过滤打分后的候选序列，保持输入顺序
func applyFilters(d *Descriptor, scored []scoredCandidate, filters map[string]string) []scoredCandidate {
	if len(filters) == 0 {
		return scored
	}

	out := scored[:0]
	for _, sc := range scored {
		if matchesFilters(d, sc.cand, filters) {
			out = append(out, sc)
		}
	}
	return out
}

// matchesFilters 判断候选是否满足全部已声明的过滤条件
func matchesFilters(d *Descriptor, cand *Candidate, filters map[string]string) bool {
	for key, value := range filters {
		if value == "" {
			continue
		}
		rule := d.ruleFor(key)
		if rule == nil {
			// 未声明的键：忽略而非报错
			continue
		}
		if !evalRule(rule, cand, value) {
			return false
		}
	}
	return true
}

// evalRule 执行单条过滤谓词
func evalRule(rule *FilterRule, cand *Candidate, value string) bool {
	attr, ok := cand.Attrs[rule.Attr]

	switch rule.Kind {
	case FilterEquals:
		if !ok {
			return false
		}
		return equalsAttr(attr, value)

	case FilterContains:
		if !ok {
			return false
		}
		s, isStr := attr.(string)
		if !isStr {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(value))

	case FilterRangeMin, FilterDateFrom:
		// 区间两端均为闭区间
		n, err := attrFloat(attr)
		if !ok || err != nil {
			return false
		}
		bound, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		return n >= bound

	case FilterRangeMax, FilterDateTo:
		n, err := attrFloat(attr)
		if !ok || err != nil {
			return false
		}
		bound, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		return n <= bound

	case FilterExists:
		want, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		return attrPresent(attr, ok) == want
	}

	return false
}

// equalsAttr 等值比较：按属性实际类型解析过滤值后比较
func equalsAttr(attr interface{}, value string) bool {
	switch v := attr.(type) {
	case string:
		return strings.EqualFold(v, value)
	case bool:
		b, err := strconv.ParseBool(value)
		return err == nil && v == b
	case int64:
		n, err := strconv.ParseInt(value, 10, 64)
		return err == nil && v == n
	case uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		return err == nil && v == n
	case float64:
		f, err := strconv.ParseFloat(value, 64)
		return err == nil && v == f
	}
	return false
}

// attrFloat 数值属性统一转 float64 参与区间比较
func attrFloat(attr interface{}) (float64, error) {
	switch v := attr.(type) {
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return 0, strconv.ErrSyntax
}

// attrPresent 存在性判定：属性存在且非零值
func attrPresent(attr interface{}, ok bool) bool {
	if !ok {
		return false
	}
	switch v := attr.(type) {
	case string:
		return v != ""
	case bool:
		return v
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	case nil:
		return false
	}
	return true
}
