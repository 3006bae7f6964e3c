package service

import (
	"sort"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
)

const (
	defaultCartPageSize = 10
	maxCartPageSize     = 100
)

// CartFilter 看板过滤条件
type CartFilter struct {
	Search   string
	Status   string     // 空或 all 表示不过滤
	DateFrom *time.Time // 按自然日，含当天
	DateTo   *time.Time // 按自然日，含当天 23:59:59
}

// CartPage 分页结果
type CartPage struct {
	Items       []Cart      `json:"items"`
	Total       int         `json:"total"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	Metrics     CartMetrics `json:"metrics"`
	WindowStart time.Time   `json:"window_start"`
	WindowEnd   time.Time   `json:"window_end"`
}

// TimeWindow 创建时间查询窗口
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DefaultWindow 默认窗口 [now-lookback, now]
func DefaultWindow(now time.Time, lookback time.Duration) TimeWindow {
	return TimeWindow{Start: now.Add(-lookback), End: now}
}

// Shift 平移窗口，days 为负向前
func (w TimeWindow) Shift(days int) TimeWindow {
	return TimeWindow{Start: w.Start.AddDate(0, 0, days), End: w.End.AddDate(0, 0, days)}
}

// Valid 起止时间是否合法
func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && !w.End.Before(w.Start)
}

// FilterCarts 按关键词、有效状态、日期过滤，并按弃单时间倒序
func FilterCarts(carts []Cart, filter CartFilter) []Cart {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	status := strings.TrimSpace(filter.Status)
	if strings.EqualFold(status, constants.StatusFilterAll) {
		status = ""
	}
	var from, to time.Time
	if filter.DateFrom != nil {
		from = startOfDay(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		to = endOfDay(*filter.DateTo)
	}

	out := make([]Cart, 0, len(carts))
	for _, cart := range carts {
		if search != "" && !cartMatches(cart, search) {
			continue
		}
		if status != "" {
			effective := cart.EffectiveStatus
			if effective == "" {
				effective = EffectiveStatus(cart.Status, cart.Remarks)
			}
			if effective != status {
				continue
			}
		}
		if !from.IsZero() && cart.AbandonedAt.Before(from) {
			continue
		}
		if !to.IsZero() && cart.AbandonedAt.After(to) {
			continue
		}
		out = append(out, cart)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AbandonedAt.After(out[j].AbandonedAt)
	})
	return out
}

// PaginateCarts 分页；页码越界时回到第一页
func PaginateCarts(carts []Cart, page, pageSize int) ([]Cart, int, int, int) {
	if pageSize <= 0 {
		pageSize = defaultCartPageSize
	}
	if pageSize > maxCartPageSize {
		pageSize = maxCartPageSize
	}
	totalPages := (len(carts) + pageSize - 1) / pageSize
	if page < 1 || page > totalPages {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(carts) {
		return []Cart{}, page, pageSize, totalPages
	}
	end := start + pageSize
	if end > len(carts) {
		end = len(carts)
	}
	return carts[start:end], page, pageSize, totalPages
}

// DedupeCarts 按 id 去重，保留首次出现
func DedupeCarts(carts []Cart) []Cart {
	seen := make(map[string]struct{}, len(carts))
	out := make([]Cart, 0, len(carts))
	for _, cart := range carts {
		if _, ok := seen[cart.ID]; ok {
			continue
		}
		seen[cart.ID] = struct{}{}
		out = append(out, cart)
	}
	return out
}

func cartMatches(cart Cart, search string) bool {
	fields := []string{cart.Customer.Name, cart.Customer.Email, cart.Customer.Phone, cart.ID}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
