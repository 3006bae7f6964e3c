package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/config"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/provider"
	"github.com/Markwebsolutions/abandoncart/internal/router"
	"github.com/Markwebsolutions/abandoncart/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		httpService := NewHTTPService(addr, engine)
		services = append(services, httpService)
	}

	// 初始化 Worker 与定时同步
	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			logger.Infow("worker_queue_disabled", "mode", mode)
		}

		if cfg.Sync.IntervalMinutes > 0 && container.ShopifyClient != nil {
			interval := time.Duration(cfg.Sync.IntervalMinutes) * time.Minute
			scheduler, err := worker.NewSyncScheduler(container.CheckoutSyncService, interval)
			if err != nil {
				return nil, err
			}
			services = append(services, scheduler)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode, "services", runner.Names())
	return RunWithOptions(runner, opts)
}
