package model

import (
	"context"
	"encoding/json"
	"strings"

	"community-platform/app/search/engine"

	"gorm.io/gorm"
)

// ==================== SearchHistory 搜索历史模型 ====================
//
// 追加写：创建后永不更新；删除只走用户主动清空（按用户范围批量删除）

type SearchHistory struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID     uint64 `gorm:"index:idx_history_user_issued,priority:1;not null;comment:发起用户ID" json:"user_id"`
	QueryText  string `gorm:"type:varchar(255);index;not null;comment:查询文本" json:"query_text"`
	EntityType string `gorm:"type:varchar(20);not null;comment:搜索实体类型" json:"entity_type"`

	// 执行统计
	ResultCount     int   `gorm:"not null;comment:结果条数" json:"result_count"`
	ExecutionTimeMs int64 `gorm:"not null;comment:排序+过滤耗时（毫秒）" json:"execution_time_ms"`

	// FiltersApplied 生效过滤参数快照（JSON）
	FiltersApplied string `gorm:"type:varchar(1000);default:'';comment:过滤参数快照" json:"filters_applied"`

	IssuedAt int64 `gorm:"index:idx_history_user_issued,priority:2,sort:desc;not null;comment:发起时间" json:"issued_at"`
}

func (SearchHistory) TableName() string {
	return "search_histories"
}

// ==================== SearchHistoryModel 数据访问层 ====================
//
// 实现 engine.HistoryStore

type SearchHistoryModel struct {
	db *gorm.DB
}

func NewSearchHistoryModel(db *gorm.DB) *SearchHistoryModel {
	return &SearchHistoryModel{db: db}
}

// Append 追加一条历史记录（只插入，永不更新）
func (m *SearchHistoryModel) Append(ctx context.Context, rec *engine.HistoryRecord) error {
	var filtersJSON string
	if len(rec.FiltersApplied) > 0 {
		if b, err := json.Marshal(rec.FiltersApplied); err == nil {
			filtersJSON = string(b)
		}
	}

	row := &SearchHistory{
		UserID:          rec.UserID,
		QueryText:       rec.QueryText,
		EntityType:      string(rec.EntityType),
		ResultCount:     rec.ResultCount,
		ExecutionTimeMs: rec.ExecutionTimeMs,
		FiltersApplied:  filtersJSON,
		IssuedAt:        rec.IssuedAt,
	}
	return m.db.WithContext(ctx).Create(row).Error
}

// suggestionRow 聚合查询的中间结构
type suggestionRow struct {
	QueryText string `gorm:"column:query_text"`
	Frequency int64  `gorm:"column:frequency"`
	LastUsed  int64  `gorm:"column:last_used"`
}

// Suggest 按历史频次聚合搜索建议
//
// 聚合规则：
//   - 大小写不敏感的子串匹配（LIKE %kw%，线上即 contains 语义）
//   - 按原始 query_text 精确分组（分组大小写敏感）
//   - frequency = count(*)，last_used = max(issued_at)
//   - 排序：frequency 降序，频次相同按 last_used 降序
func (m *SearchHistoryModel) Suggest(ctx context.Context, keyword string,
	entityType engine.EntityType, limit int) ([]engine.Suggestion, error) {

	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"

	db := m.db.WithContext(ctx).
		Model(&SearchHistory{}).
		Select("query_text, COUNT(*) AS frequency, MAX(issued_at) AS last_used").
		Where("LOWER(query_text) LIKE ?", pattern)

	if entityType != "" {
		db = db.Where("entity_type = ?", string(entityType))
	}

	var rows []suggestionRow
	err := db.Group("query_text").
		Order("frequency DESC, last_used DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]engine.Suggestion, 0, len(rows))
	for _, r := range rows {
		out = append(out, engine.Suggestion{
			QueryText: r.QueryText,
			Frequency: r.Frequency,
			LastUsed:  r.LastUsed,
		})
	}
	return out, nil
}

// ClearByUser 删除指定用户的全部历史及其点击记录，返回删除的历史行数
func (m *SearchHistoryModel) ClearByUser(ctx context.Context, userID uint64) (int64, error) {
	var deleted int64
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先清点击记录（外键指向历史行）
		if err := tx.Where("user_id = ?", userID).
			Delete(&SearchInteraction{}).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ?", userID).Delete(&SearchHistory{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// escapeLike 转义 SQL LIKE 特殊字符
//
// % 和 _ 是 LIKE 通配符，用户输入需转义为字面匹配
func escapeLike(keyword string) string {
	keyword = strings.ReplaceAll(keyword, "\\", "\\\\")
	keyword = strings.ReplaceAll(keyword, "%", "\\%")
	keyword = strings.ReplaceAll(keyword, "_", "\\_")
	return keyword
}
