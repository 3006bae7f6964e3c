package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/provider"
	"github.com/Markwebsolutions/abandoncart/internal/queue"
	"github.com/Markwebsolutions/abandoncart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutSync, c.handleCheckoutSync)
}

func (c *Consumer) handleCheckoutSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_checkout_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCheckoutSyncPayload(task)
	if err != nil {
		logger.Warnw("worker_checkout_sync_unmarshal_failed", "error", err)
		// 载荷损坏重试也无法恢复
		return errors.Join(err, asynq.SkipRetry)
	}
	trigger := strings.TrimSpace(payload.Trigger)
	if trigger == "" {
		trigger = service.SyncTriggerQueue
	}
	if c.CheckoutSyncService == nil {
		logger.Warnw("worker_checkout_sync_service_missing", "request_id", payload.RequestID)
		return nil
	}

	result, err := c.CheckoutSyncService.Sync(ctx, trigger)
	if err != nil {
		if errors.Is(err, service.ErrShopifyNotConfigured) {
			logger.Warnw("worker_checkout_sync_skip_not_configured", "request_id", payload.RequestID)
			return nil
		}
		logger.Warnw("worker_checkout_sync_failed",
			"request_id", payload.RequestID,
			"trigger", trigger,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_checkout_sync_done",
		"request_id", payload.RequestID,
		"trigger", trigger,
		"inserted", result.Inserted,
		"total_count", result.TotalCount,
		"queued_for_ms", queuedFor(payload).Milliseconds(),
	)
	return nil
}

func queuedFor(payload queue.CheckoutSyncPayload) time.Duration {
	if payload.RequestedAt.IsZero() {
		return 0
	}
	return time.Since(payload.RequestedAt)
}
