package repository

import "time"

// CheckoutRangeFilter 按创建时间窗口查询弃单
type CheckoutRangeFilter struct {
	Start time.Time
	End   time.Time
	Limit int
}

// TemplateListFilter 查询模板列表的过滤条件
type TemplateListFilter struct {
	Page     int
	PageSize int
	Type     string
	Category string
	Search   string
}
