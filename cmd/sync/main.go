package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/config"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/provider"
	"github.com/Markwebsolutions/abandoncart/internal/service"
)

// 单次同步：拉取水位线之后的弃单写入数据库后退出
func main() {
	var timeout time.Duration
	var quiet bool
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "同步超时时间")
	flag.BoolVar(&quiet, "quiet", false, "不输出同步结果 JSON")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	container := provider.NewContainer(cfg)
	if container.ShopifyClient == nil {
		stdLog.Fatalf("Shopify is not configured: set SHOPIFY_SHOP and SHOPIFY_ACCESS_TOKEN")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	result, err := container.CheckoutSyncService.Sync(ctx, service.SyncTriggerCLI)
	if err != nil {
		stdLog.Fatalf("Sync failed: %v", err)
	}
	if quiet {
		return
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		stdLog.Fatalf("Failed to print result: %v", err)
	}
}
