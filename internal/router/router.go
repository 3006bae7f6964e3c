package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Markwebsolutions/abandoncart/internal/cache"
	"github.com/Markwebsolutions/abandoncart/internal/config"
	adminhandlers "github.com/Markwebsolutions/abandoncart/internal/http/handlers/admin"
	"github.com/Markwebsolutions/abandoncart/internal/http/response"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/provider"

	"github.com/gin-gonic/gin"
)

const (
	healthPath      = "/health"
	adminPathPrefix = "/api/v1/admin/"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ac"
	}
	syncRule := NewRateLimitRule(fmt.Sprintf("%s:rate:sync", redisPrefix), cfg.RateLimit.Sync)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 弃单看板
			admin.GET("/carts", adminHandler.GetCarts)
			admin.GET("/carts/live", adminHandler.GetLiveCarts)
			admin.GET("/carts/recent", adminHandler.GetRecentCarts)
			admin.POST("/carts/sync", RateLimitMiddleware(newRateLimiter(), syncRule, KeyByIP), adminHandler.SyncCarts)
			admin.GET("/sync/status", adminHandler.GetSyncStatus)
			admin.GET("/carts/:id", adminHandler.GetCart)
			admin.PATCH("/carts/:id", adminHandler.UpdateCartField)

			// 跟进记录与状态
			admin.GET("/carts/:id/status", adminHandler.GetCartStatus)
			admin.POST("/carts/:id/status", adminHandler.ChangeCartStatus)
			admin.GET("/carts/:id/remarks", adminHandler.GetCartRemarks)
			admin.POST("/carts/:id/remarks", adminHandler.CreateCartRemark)
			admin.POST("/carts/:id/responses", adminHandler.CreateCustomerResponse)
			admin.PUT("/carts/:id/remarks/:remark_id/response", adminHandler.UpdateRemarkResponse)
			admin.DELETE("/carts/:id/remarks/:remark_id", adminHandler.DeleteCartRemark)

			// 消息模板
			admin.GET("/templates", adminHandler.GetTemplates)
			admin.POST("/templates", adminHandler.CreateTemplate)
			admin.PUT("/templates/:id", adminHandler.UpdateTemplate)
			admin.DELETE("/templates/:id", adminHandler.DeleteTemplate)
			admin.POST("/templates/:id/render", adminHandler.RenderTemplate)

			admin.GET("/routes", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminRouteCatalog(r))
			})
		}
	}

	// 健康检查
	r.GET(healthPath, func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// newRateLimiter Redis 可用时跨实例计数，否则退化为进程内计数
func newRateLimiter() RateLimiter {
	if client := cache.Client(); client != nil {
		return NewRedisRateLimiter(client)
	}
	return NewLocalRateLimiter()
}

type adminRouteCatalogItem struct {
	Module string `json:"module"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

func buildAdminRouteCatalog(engine *gin.Engine) []adminRouteCatalogItem {
	if engine == nil {
		return []adminRouteCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminRouteCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, adminPathPrefix) {
			continue
		}
		key := method + ":" + item.Path
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, adminRouteCatalogItem{
			Module: deriveAdminRouteModule(item.Path),
			Method: method,
			Path:   item.Path,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Path == items[j].Path {
				return items[i].Method < items[j].Method
			}
			return items[i].Path < items[j].Path
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminRouteModule(path string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(path), adminPathPrefix)
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	switch {
	case segments[0] == "sync":
		return "carts"
	case segments[0] == "carts" && len(segments) > 2 && (segments[2] == "remarks" || segments[2] == "responses"):
		return "remarks"
	}
	return segments[0]
}
