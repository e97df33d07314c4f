package types

// ==================== 单类型搜索 ====================

// SearchReq 单类型搜索请求
//
// 过滤参数按键显式声明：未声明的查询参数不会进入过滤器
type SearchReq struct {
	Type  string `form:"type"`
	Query string `form:"q,optional"`

	// 通用过滤
	Category string `form:"category,optional"`
	Author   string `form:"author,optional"`
	DateFrom string `form:"date_from,optional"` // Unix 秒
	DateTo   string `form:"date_to,optional"`   // Unix 秒

	// 用户过滤
	Role      string `form:"role,optional"`
	Location  string `form:"location,optional"`
	HasAvatar string `form:"has_profile_picture,optional"`

	// 帖子过滤
	IsPinned string `form:"is_pinned,optional"`
	IsClosed string `form:"is_closed,optional"`
	HasVotes string `form:"has_votes,optional"`
	MinVotes string `form:"min_votes,optional"`
	MaxVotes string `form:"max_votes,optional"`
	ThreadID string `form:"thread_id,optional"`

	// 布告过滤
	MinPrice string `form:"min_price,optional"`
	MaxPrice string `form:"max_price,optional"`
	IsSold   string `form:"is_sold,optional"`
}

// SearchResultItem 单条搜索结果
type SearchResultItem struct {
	EntityID   uint64            `json:"entityId"`
	EntityType string            `json:"entityType"`
	Score      float64           `json:"score"`
	MatchedVia string            `json:"matchedVia"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// SearchResp 单类型搜索响应
type SearchResp struct {
	Type    string             `json:"type"`
	Query   string             `json:"query"`
	Total   int                `json:"total"`
	TookMs  int64              `json:"tookMs"`
	Results []SearchResultItem `json:"results"`
}

// ==================== 多类型搜索 ====================

// MultiSearchReq 多类型搜索请求
//
// types 逗号分隔；留空使用默认集合（不含 post）
type MultiSearchReq struct {
	Query string `form:"q,optional"`
	Types string `form:"types,optional"`
	Limit int    `form:"limit,default=5" validate:"min=1,max=50"`
}

// MultiSearchResp 多类型搜索响应
//
// 每个请求的类型在 Results 中都有键；失败的类型记入 Errors
type MultiSearchResp struct {
	Query   string                        `json:"query"`
	TookMs  int64                         `json:"tookMs"`
	Results map[string][]SearchResultItem `json:"results"`
	Errors  map[string]string             `json:"errors,omitempty"`
}

// ==================== 搜索建议 ====================

// SuggestReq 搜索建议请求
type SuggestReq struct {
	Keyword string `form:"q"`
	Type    string `form:"type,optional"`
	Limit   int    `form:"limit,default=10" validate:"min=1,max=50"`
}

// SuggestItem 搜索建议条目
type SuggestItem struct {
	QueryText string `json:"queryText"`
	Frequency int64  `json:"frequency"`
	LastUsed  int64  `json:"lastUsed"`
}

// SuggestResp 搜索建议响应
type SuggestResp struct {
	Suggestions []SuggestItem `json:"suggestions"`
}

// ==================== 历史与点击 ====================

// ClearHistoryResp 清空历史响应
type ClearHistoryResp struct {
	Deleted int64 `json:"deleted"`
}

// ClickReq 搜索结果点击上报
type ClickReq struct {
	HistoryID  uint64 `json:"historyId" validate:"required"`
	EntityID   uint64 `json:"entityId" validate:"required"`
	EntityType string `json:"entityType" validate:"required"`
}

// ClickResp 点击上报响应
type ClickResp struct {
	Recorded bool `json:"recorded"`
}

// ==================== 健康检查 ====================

// HealthResp 健康检查响应
type HealthResp struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
