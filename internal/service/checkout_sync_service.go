package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/cache"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/repository"
	"github.com/Markwebsolutions/abandoncart/internal/shopify"
)

const (
	defaultSyncLookback = 72 * time.Hour
	syncStatusCacheKey  = "checkout_sync:status"
)

// 同步触发来源
const (
	SyncTriggerManual    = "manual"
	SyncTriggerQueue     = "queue"
	SyncTriggerScheduled = "scheduled"
	SyncTriggerCLI       = "cli"
)

// CheckoutSource 远端弃单数据源
type CheckoutSource interface {
	ListAbandonedCheckouts(ctx context.Context, params shopify.ListParams) (*shopify.CheckoutPage, error)
}

// SyncResult 单次同步结果
type SyncResult struct {
	Inserted   int       `json:"inserted"`    // 本次拉取的记录数
	TotalCount int64     `json:"total_count"` // 同步后库内总数
	Pages      int       `json:"pages"`
	Watermark  time.Time `json:"watermark"`
	Trigger    string    `json:"trigger"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SyncStatus 最近一次同步状态
type SyncStatus struct {
	LastResult  *SyncResult `json:"last_result"`
	LastError   string      `json:"last_error,omitempty"`
	LastErrorAt *time.Time  `json:"last_error_at,omitempty"`
}

// CheckoutSyncService 弃单同步服务：按水位线翻页拉取并按 id 写入
type CheckoutSyncService struct {
	source   CheckoutSource
	repo     repository.CheckoutRepository
	lookback time.Duration
	now      func() time.Time
}

// NewCheckoutSyncService 创建同步服务，source 为 nil 表示未配置 Shopify
func NewCheckoutSyncService(source CheckoutSource, repo repository.CheckoutRepository, lookback time.Duration) *CheckoutSyncService {
	if lookback <= 0 {
		lookback = defaultSyncLookback
	}
	return &CheckoutSyncService{
		source:   source,
		repo:     repo,
		lookback: lookback,
		now:      time.Now,
	}
}

// ComputeWatermark 水位线 = max(库内最新创建时间, now - lookback)
func ComputeWatermark(storeMax *time.Time, now time.Time, lookback time.Duration) time.Time {
	floor := now.Add(-lookback)
	if storeMax != nil && storeMax.After(floor) {
		return *storeMax
	}
	return floor
}

// Watermark 当前水位线
func (s *CheckoutSyncService) Watermark() (time.Time, error) {
	latest, err := s.repo.MaxCreatedAt()
	if err != nil {
		return time.Time{}, err
	}
	return ComputeWatermark(latest, s.now().UTC(), s.lookback), nil
}

// Sync 执行一次同步；任一页失败即中止，已写入的记录保留
func (s *CheckoutSyncService) Sync(ctx context.Context, trigger string) (*SyncResult, error) {
	if s.source == nil {
		return nil, ErrShopifyNotConfigured
	}
	if strings.TrimSpace(trigger) == "" {
		trigger = SyncTriggerManual
	}
	log := logger.Component("checkout_sync").With("trigger", trigger)

	result := &SyncResult{Trigger: trigger, StartedAt: s.now().UTC()}
	watermark, err := s.Watermark()
	if err != nil {
		return nil, s.fail(ctx, fmt.Errorf("read sync watermark failed: %w", err))
	}
	result.Watermark = watermark

	params := shopify.ListParams{CreatedAtMin: watermark}
	for {
		page, err := s.source.ListAbandonedCheckouts(ctx, params)
		if err != nil {
			log.Warnw("checkout_sync_page_failed", "page", result.Pages+1, "fetched", result.Inserted, "error", err)
			return nil, s.fail(ctx, err)
		}
		result.Pages++
		result.Inserted += len(page.Checkouts)

		rows := make([]models.AbandonedCheckout, 0, len(page.Checkouts))
		syncedAt := s.now().UTC()
		for _, checkout := range page.Checkouts {
			if checkout.ID.String() == "" {
				log.Warnw("checkout_sync_skip_without_id", "page", result.Pages)
				continue
			}
			rows = append(rows, CheckoutToRow(checkout, syncedAt))
		}
		if err := s.repo.UpsertBatch(rows); err != nil {
			return nil, s.fail(ctx, fmt.Errorf("upsert checkouts failed: %w", err))
		}

		if page.NextPageURL == "" {
			break
		}
		params = shopify.ListParams{PageURL: page.NextPageURL}
	}

	total, err := s.repo.Count()
	if err != nil {
		return nil, s.fail(ctx, fmt.Errorf("count checkouts failed: %w", err))
	}
	result.TotalCount = total
	result.FinishedAt = s.now().UTC()

	log.Infow("checkout_sync_done",
		"inserted", result.Inserted,
		"total_count", result.TotalCount,
		"pages", result.Pages,
		"watermark", result.Watermark,
	)
	s.saveStatus(ctx, SyncStatus{LastResult: result})
	return result, nil
}

// LastStatus 最近一次同步状态，无记录返回 nil
func (s *CheckoutSyncService) LastStatus(ctx context.Context) (*SyncStatus, error) {
	var status SyncStatus
	ok, err := cache.GetJSON(ctx, syncStatusCacheKey, &status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &status, nil
}

func (s *CheckoutSyncService) fail(ctx context.Context, err error) error {
	now := s.now().UTC()
	status := SyncStatus{LastError: err.Error(), LastErrorAt: &now}
	if previous, loadErr := s.LastStatus(ctx); loadErr == nil && previous != nil {
		status.LastResult = previous.LastResult
	}
	s.saveStatus(ctx, status)
	return err
}

func (s *CheckoutSyncService) saveStatus(ctx context.Context, status SyncStatus) {
	if err := cache.SetJSON(ctx, syncStatusCacheKey, status, 0); err != nil {
		logger.Warnw("checkout_sync_status_save_failed", "error", err)
	}
}

// CheckoutToRow Shopify 弃单转库表记录；status/priority 留空由数据库默认值或既有值决定
func CheckoutToRow(checkout shopify.Checkout, syncedAt time.Time) models.AbandonedCheckout {
	items := models.RawJSON(checkout.LineItemsJSON)
	if len(items) == 0 {
		items = models.RawJSON("[]")
	}
	var customer models.JSON
	if checkout.CustomerData != nil {
		customer = models.JSON(checkout.CustomerData)
	}
	return models.AbandonedCheckout{
		ID:        checkout.ID.String(),
		CreatedAt: checkout.CreatedAt.UTC(),
		UpdatedAt: checkout.UpdatedAt.UTC(),
		Customer:  customer,
		Email:     strings.TrimSpace(checkout.Email),
		Phone:     strings.TrimSpace(checkout.Phone),
		CartValue: models.ParseMoney(checkout.SubtotalPrice),
		Items:     items,
		Raw:       models.RawJSON(checkout.Raw),
		SyncedAt:  syncedAt,
	}
}
