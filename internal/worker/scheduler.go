package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/service"
)

// CheckoutSyncer 执行一次弃单同步
type CheckoutSyncer interface {
	Sync(ctx context.Context, trigger string) (*service.SyncResult, error)
}

// SyncScheduler 定时触发弃单同步，同一时刻只运行一次
type SyncScheduler struct {
	name     string
	syncer   CheckoutSyncer
	interval time.Duration
	running  sync.Mutex
	stopped  chan struct{}
	once     sync.Once
}

// NewSyncScheduler 创建定时同步服务
func NewSyncScheduler(syncer CheckoutSyncer, interval time.Duration) (*SyncScheduler, error) {
	if syncer == nil {
		return nil, errors.New("syncer is nil")
	}
	if interval <= 0 {
		return nil, errors.New("sync interval must be positive")
	}
	return &SyncScheduler{
		name:     "sync-scheduler",
		syncer:   syncer,
		interval: interval,
		stopped:  make(chan struct{}),
	}, nil
}

// Name 服务名称
func (s *SyncScheduler) Name() string {
	if s == nil || s.name == "" {
		return "sync-scheduler"
	}
	return s.name
}

// Start 立即同步一次，之后按间隔同步，直到 ctx 结束或 Stop
func (s *SyncScheduler) Start(ctx context.Context) error {
	if s == nil || s.syncer == nil {
		return errors.New("scheduler not initialized")
	}
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopped:
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// Stop 停止服务
func (s *SyncScheduler) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	_ = ctx
	s.once.Do(func() { close(s.stopped) })
	return nil
}

// RunOnce 执行一次同步；上一次仍在运行时跳过
func (s *SyncScheduler) RunOnce(ctx context.Context) bool {
	if !s.running.TryLock() {
		logger.Debugw("worker_scheduled_sync_skip_running")
		return false
	}
	defer s.running.Unlock()

	result, err := s.syncer.Sync(ctx, service.SyncTriggerScheduled)
	if err != nil {
		if errors.Is(err, service.ErrShopifyNotConfigured) {
			logger.Debugw("worker_scheduled_sync_skip_not_configured")
			return true
		}
		logger.Warnw("worker_scheduled_sync_failed", "error", err)
		return true
	}
	logger.Infow("worker_scheduled_sync_done",
		"inserted", result.Inserted,
		"total_count", result.TotalCount,
		"watermark", result.Watermark,
	)
	return true
}
