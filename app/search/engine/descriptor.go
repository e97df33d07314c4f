package engine

// ==================== 字段权重 ====================
//
// 权重是固定的有限枚举（A/B/C），不允许任意浮点数，
// 保证排序结果可解释、可复现

const (
	WeightA = 1.0 // 标题/名称类字段
	WeightB = 0.6 // 正文/描述类字段
	WeightC = 0.3 // 地点/三级字段
)

// FieldSpec 参与搜索的字段及其权重
type FieldSpec struct {
	Name   string
	Weight float64
}

// ==================== 过滤规则 ====================

// FilterKind 过滤谓词类型
type FilterKind int

const (
	FilterEquals   FilterKind = iota // 等值（分类、角色、布尔开关）
	FilterContains                   // 子串包含（地点、作者名），大小写不敏感
	FilterRangeMin                   // 数值下界（含）
	FilterRangeMax                   // 数值上界（含）
	FilterDateFrom                   // 时间下界（含，Unix 秒）
	FilterDateTo                     // 时间上界（含，Unix 秒）
	FilterExists                     // 存在性（has_votes、has_profile_picture）
)

// FilterRule 一条声明式过滤规则：请求参数 Key -> 候选属性 Attr 上的谓词
type FilterRule struct {
	Key  string
	Kind FilterKind
	Attr string
}

// ==================== 实体搜索描述符 ====================

// Descriptor 每种实体类型一份的静态搜索描述
//
// 启动期构建固定表，不做运行时反射，逐类型可单测
type Descriptor struct {
	Type        EntityType
	Fields      []FieldSpec  // 有序：权重从高到低
	FuzzyFields []string     // 参与模糊兜底的字段（名称类），必须是 Fields 的子集
	Filters     []FilterRule // 该类型合法的过滤规则，未声明的键一律忽略
}

// descriptors 五种实体类型的搜索描述静态表
var descriptors = map[EntityType]*Descriptor{
	EntityUser: {
		Type: EntityUser,
		Fields: []FieldSpec{
			{Name: "username", Weight: WeightA},
			{Name: "first_name", Weight: WeightA},
			{Name: "last_name", Weight: WeightA},
			{Name: "bio", Weight: WeightB},
			{Name: "location", Weight: WeightC},
		},
		FuzzyFields: []string{"username", "first_name", "last_name"},
		Filters: []FilterRule{
			{Key: "role", Kind: FilterEquals, Attr: "role"},
			{Key: "location", Kind: FilterContains, Attr: "location"},
			{Key: "has_profile_picture", Kind: FilterExists, Attr: "avatar_url"},
			{Key: "date_from", Kind: FilterDateFrom, Attr: "created_at"},
			{Key: "date_to", Kind: FilterDateTo, Attr: "created_at"},
		},
	},
	EntityThread: {
		Type: EntityThread,
		Fields: []FieldSpec{
			{Name: "title", Weight: WeightA},
			{Name: "content", Weight: WeightB},
			{Name: "author_name", Weight: WeightC},
		},
		FuzzyFields: []string{"title"},
		Filters: []FilterRule{
			{Key: "category", Kind: FilterEquals, Attr: "category"},
			{Key: "author", Kind: FilterContains, Attr: "author_name"},
			{Key: "is_pinned", Kind: FilterEquals, Attr: "is_pinned"},
			{Key: "is_closed", Kind: FilterEquals, Attr: "is_closed"},
			{Key: "has_votes", Kind: FilterExists, Attr: "vote_count"},
			{Key: "min_votes", Kind: FilterRangeMin, Attr: "vote_count"},
			{Key: "max_votes", Kind: FilterRangeMax, Attr: "vote_count"},
			{Key: "date_from", Kind: FilterDateFrom, Attr: "created_at"},
			{Key: "date_to", Kind: FilterDateTo, Attr: "created_at"},
		},
	},
	EntityPost: {
		Type: EntityPost,
		Fields: []FieldSpec{
			{Name: "content", Weight: WeightA},
			{Name: "author_name", Weight: WeightB},
		},
		FuzzyFields: []string{"author_name"},
		Filters: []FilterRule{
			{Key: "thread_id", Kind: FilterEquals, Attr: "thread_id"},
			{Key: "author", Kind: FilterContains, Attr: "author_name"},
			{Key: "has_votes", Kind: FilterExists, Attr: "vote_count"},
			{Key: "date_from", Kind: FilterDateFrom, Attr: "created_at"},
			{Key: "date_to", Kind: FilterDateTo, Attr: "created_at"},
		},
	},
	EntityNews: {
		Type: EntityNews,
		Fields: []FieldSpec{
			{Name: "title", Weight: WeightA},
			{Name: "summary", Weight: WeightB},
			{Name: "content", Weight: WeightC},
		},
		FuzzyFields: []string{"title"},
		Filters: []FilterRule{
			{Key: "category", Kind: FilterEquals, Attr: "category"},
			{Key: "author", Kind: FilterContains, Attr: "author_name"},
			{Key: "date_from", Kind: FilterDateFrom, Attr: "published_at"},
			{Key: "date_to", Kind: FilterDateTo, Attr: "published_at"},
		},
	},
	EntityNotice: {
		Type: EntityNotice,
		Fields: []FieldSpec{
			{Name: "title", Weight: WeightA},
			{Name: "description", Weight: WeightB},
			{Name: "location", Weight: WeightC},
		},
		FuzzyFields: []string{"title"},
		Filters: []FilterRule{
			{Key: "category", Kind: FilterEquals, Attr: "category"},
			{Key: "location", Kind: FilterContains, Attr: "location"},
			{Key: "min_price", Kind: FilterRangeMin, Attr: "price"},
			{Key: "max_price", Kind: FilterRangeMax, Attr: "price"},
			{Key: "is_sold", Kind: FilterEquals, Attr: "is_sold"},
			{Key: "date_from", Kind: FilterDateFrom, Attr: "created_at"},
			{Key: "date_to", Kind: FilterDateTo, Attr: "created_at"},
		},
	},
}

// DescriptorFor 获取实体类型对应的搜索描述符
func DescriptorFor(t EntityType) (*Descriptor, bool) {
	d, ok := descriptors[t]
	return d, ok
}

// ruleFor 按请求参数键查找规则，未声明返回 nil
func (d *Descriptor) ruleFor(key string) *FilterRule {
	for i := range d.Filters {
		if d.Filters[i].Key == key {
			return &d.Filters[i]
		}
	}
	return nil
}
