package service

import (
	"context"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/repository"
	"github.com/Markwebsolutions/abandoncart/internal/shopify"
)

const defaultRecentLimit = 15

// LiveCheckoutSource 实时拉取全部分页
type LiveCheckoutSource interface {
	ListAllAbandonedCheckouts(ctx context.Context, createdAtMin, createdAtMax time.Time) ([]shopify.Checkout, error)
}

// CartServiceOptions 看板参数
type CartServiceOptions struct {
	Lookback    time.Duration
	PageSize    int
	RecentLimit int
	Metrics     MetricsOptions
}

// CartQuery 看板查询
type CartQuery struct {
	Window   TimeWindow // 为空时使用默认回看窗口
	Filter   CartFilter
	Page     int
	PageSize int
}

// SyncAndListResult 同步后重新读取的结果
type SyncAndListResult struct {
	Sync  *SyncResult `json:"sync"`
	Carts *CartPage   `json:"carts"`
}

// CartService 弃单看板服务
type CartService struct {
	checkouts repository.CheckoutRepository
	remarks   repository.RemarkRepository
	live      LiveCheckoutSource
	syncer    *CheckoutSyncService
	options   CartServiceOptions
	now       func() time.Time
}

// NewCartService 创建弃单看板服务，live 为 nil 表示未配置 Shopify
func NewCartService(
	checkouts repository.CheckoutRepository,
	remarks repository.RemarkRepository,
	live LiveCheckoutSource,
	syncer *CheckoutSyncService,
	options CartServiceOptions,
) *CartService {
	if options.Lookback <= 0 {
		options.Lookback = defaultSyncLookback
	}
	if options.PageSize <= 0 {
		options.PageSize = defaultCartPageSize
	}
	if options.RecentLimit <= 0 {
		options.RecentLimit = defaultRecentLimit
	}
	if options.Metrics.UrgentHours <= 0 {
		options.Metrics = DefaultMetricsOptions()
	}
	return &CartService{
		checkouts: checkouts,
		remarks:   remarks,
		live:      live,
		syncer:    syncer,
		options:   options,
		now:       time.Now,
	}
}

// ListStored 读取库内窗口内的弃单
func (s *CartService) ListStored(query CartQuery) (*CartPage, error) {
	window, err := s.resolveWindow(query.Window)
	if err != nil {
		return nil, err
	}
	rows, err := s.checkouts.ListByCreatedRange(repository.CheckoutRangeFilter{Start: window.Start, End: window.End})
	if err != nil {
		return nil, err
	}
	now := s.now()
	carts := make([]Cart, 0, len(rows))
	for _, row := range rows {
		carts = append(carts, NormalizeCheckout(StoredRecord(row), now))
	}
	if err := s.attachRemarks(carts); err != nil {
		return nil, err
	}
	return s.buildPage(carts, query, window), nil
}

// ListLive 直接从 Shopify 拉取窗口内的弃单，不写库
func (s *CartService) ListLive(ctx context.Context, query CartQuery) (*CartPage, error) {
	if s.live == nil {
		return nil, ErrShopifyNotConfigured
	}
	window, err := s.resolveWindow(query.Window)
	if err != nil {
		return nil, err
	}
	checkouts, err := s.live.ListAllAbandonedCheckouts(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	now := s.now()
	carts := make([]Cart, 0, len(checkouts))
	for _, checkout := range checkouts {
		carts = append(carts, NormalizeCheckout(LiveRecord(checkout), now))
	}
	carts = DedupeCarts(carts)
	if err := s.attachRemarks(carts); err != nil {
		return nil, err
	}
	return s.buildPage(carts, query, window), nil
}

// SyncAndList 同步后重新读取库内数据
func (s *CartService) SyncAndList(ctx context.Context, query CartQuery, trigger string) (*SyncAndListResult, error) {
	if s.syncer == nil {
		return nil, ErrShopifyNotConfigured
	}
	result, err := s.syncer.Sync(ctx, trigger)
	if err != nil {
		return nil, err
	}
	page, err := s.ListStored(query)
	if err != nil {
		return nil, err
	}
	return &SyncAndListResult{Sync: result, Carts: page}, nil
}

// Recent 最近的弃单
func (s *CartService) Recent(limit int) ([]Cart, error) {
	if limit <= 0 || limit > maxCartPageSize {
		limit = s.options.RecentLimit
	}
	rows, err := s.checkouts.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	now := s.now()
	carts := make([]Cart, 0, len(rows))
	for _, row := range rows {
		carts = append(carts, NormalizeCheckout(StoredRecord(row), now))
	}
	if err := s.attachRemarks(carts); err != nil {
		return nil, err
	}
	return carts, nil
}

// Get 获取单个库内弃单及其记录
func (s *CartService) Get(cartID string) (*Cart, error) {
	row, err := s.checkouts.GetByID(strings.TrimSpace(cartID))
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrCartNotFound
	}
	remarks, err := s.remarks.ListByCart(row.ID)
	if err != nil {
		return nil, err
	}
	cart := NormalizeCheckout(StoredRecord(*row), s.now()).WithRemarks(remarks)
	return &cart, nil
}

// UpdateField 直接修改基线 status/priority，不写跟进记录
func (s *CartService) UpdateField(cartID, field, value string) (*models.AbandonedCheckout, error) {
	field, value, err := validateCartField(field, value)
	if err != nil {
		return nil, err
	}
	row, err := s.checkouts.UpdateField(strings.TrimSpace(cartID), field, value)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrCartNotFound
	}
	return row, nil
}

// DefaultWindow 当前默认回看窗口
func (s *CartService) DefaultWindow() TimeWindow {
	return DefaultWindow(s.now().UTC(), s.options.Lookback)
}

// Lookback 回看窗口长度
func (s *CartService) Lookback() time.Duration {
	return s.options.Lookback
}

func (s *CartService) resolveWindow(window TimeWindow) (TimeWindow, error) {
	defaults := s.DefaultWindow()
	if window.Start.IsZero() {
		window.Start = defaults.Start
	}
	if window.End.IsZero() {
		window.End = defaults.End
	}
	if !window.Valid() {
		return TimeWindow{}, ErrInvalidDateRange
	}
	return TimeWindow{Start: window.Start.UTC(), End: window.End.UTC()}, nil
}

func (s *CartService) attachRemarks(carts []Cart) error {
	ids := make([]string, 0, len(carts))
	for _, cart := range carts {
		if cart.ID != "" {
			ids = append(ids, cart.ID)
		}
	}
	grouped, err := s.remarks.ListByCarts(ids)
	if err != nil {
		return err
	}
	for i := range carts {
		carts[i] = carts[i].WithRemarks(grouped[carts[i].ID])
	}
	return nil
}

func (s *CartService) buildPage(carts []Cart, query CartQuery, window TimeWindow) *CartPage {
	filtered := FilterCarts(carts, query.Filter)
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.options.PageSize
	}
	items, page, pageSize, totalPages := PaginateCarts(filtered, query.Page, pageSize)
	return &CartPage{
		Items:       items,
		Total:       len(filtered),
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		Metrics:     ComputeMetrics(filtered, s.options.Metrics),
		WindowStart: window.Start,
		WindowEnd:   window.End,
	}
}

// ParseStatusFilter 规范化状态过滤参数
func ParseStatusFilter(raw string) (string, error) {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" || status == constants.StatusFilterAll {
		return "", nil
	}
	if !constants.IsCartStatus(status) {
		return "", ErrInvalidCartStatus
	}
	return status, nil
}
