package provider

import (
	"errors"

	"github.com/Markwebsolutions/abandoncart/internal/cache"
	"github.com/Markwebsolutions/abandoncart/internal/config"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/queue"
	"github.com/Markwebsolutions/abandoncart/internal/repository"
	"github.com/Markwebsolutions/abandoncart/internal/service"
	"github.com/Markwebsolutions/abandoncart/internal/shopify"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config        *config.Config
	QueueClient   *queue.Client
	ShopifyClient *shopify.Client // 未配置时为 nil

	// Repositories
	CheckoutRepo repository.CheckoutRepository
	RemarkRepo   repository.RemarkRepository
	TemplateRepo repository.TemplateRepository

	// Services
	CheckoutSyncService *service.CheckoutSyncService
	CartService         *service.CartService
	RemarkService       *service.RemarkService
	TemplateService     *service.TemplateService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	shopifyClient, err := shopify.NewClient(shopify.Config{
		Shop:        cfg.Shopify.Shop,
		AccessToken: cfg.Shopify.AccessToken,
		APIVersion:  cfg.Shopify.APIVersion,
		PageSize:    cfg.Shopify.PageSize,
		Timeout:     cfg.Shopify.Timeout(),
		BaseURL:     cfg.Shopify.BaseURL,
	})
	if err != nil {
		if errors.Is(err, shopify.ErrNotConfigured) {
			logger.Warnw("provider_shopify_not_configured", "shop", cfg.Shopify.Shop)
		} else {
			logger.Errorw("provider_init_shopify_client_failed", "error", err)
		}
		shopifyClient = nil
	}

	return Build(cfg, models.DB, queueClient, shopifyClient)
}

// Build 用给定依赖组装容器，shopifyClient 为 nil 时只提供库内数据
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, shopifyClient *shopify.Client) *Container {
	c := &Container{
		Config:        cfg,
		QueueClient:   queueClient,
		ShopifyClient: shopifyClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.CheckoutRepo = repository.NewCheckoutRepository(db)
	c.RemarkRepo = repository.NewRemarkRepository(db)
	c.TemplateRepo = repository.NewTemplateRepository(db)
}

func (c *Container) initServices() {
	// 接口字段不能持有 typed nil
	var source service.CheckoutSource
	var live service.LiveCheckoutSource
	if c.ShopifyClient != nil {
		source = c.ShopifyClient
		live = c.ShopifyClient
	}

	lookback := c.Config.Sync.Lookback()
	c.CheckoutSyncService = service.NewCheckoutSyncService(source, c.CheckoutRepo, lookback)

	var syncer *service.CheckoutSyncService
	if source != nil {
		syncer = c.CheckoutSyncService
	}
	c.CartService = service.NewCartService(c.CheckoutRepo, c.RemarkRepo, live, syncer, service.CartServiceOptions{
		Lookback:    lookback,
		PageSize:    c.Config.Cart.PageSize,
		RecentLimit: c.Config.Sync.RecentLimit,
		Metrics:     service.NewMetricsOptions(c.Config.Cart.UrgentHours, c.Config.Cart.RecoveryRate),
	})
	c.RemarkService = service.NewRemarkService(c.RemarkRepo, c.CheckoutRepo)
	c.TemplateService = service.NewTemplateService(c.TemplateRepo, c.CartService)
}
