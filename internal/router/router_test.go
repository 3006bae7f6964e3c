package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/config"
	"github.com/Markwebsolutions/abandoncart/internal/logger"
	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	return SetupRouter(cfg, provider.Build(cfg, db, nil, nil))
}

func TestSetupRouterHealth(t *testing.T) {
	engine := setupRouterTest(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("health response should carry a request id")
	}
}

func TestSetupRouterRouteCatalog(t *testing.T) {
	engine := setupRouterTest(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/routes", nil))
	var env struct {
		StatusCode int                     `json:"status_code"`
		Data       []adminRouteCatalogItem `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if env.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", env.StatusCode)
	}
	found := false
	for _, item := range env.Data {
		if item.Method == http.MethodPost && item.Path == "/api/v1/admin/carts/sync" {
			found = item.Module == "carts"
		}
		if item.Path == "/health" {
			t.Fatalf("catalog should only list admin routes")
		}
	}
	if !found {
		t.Fatalf("sync route missing from catalog: %+v", env.Data)
	}
}

func TestSetupRouterCartsWithoutShopify(t *testing.T) {
	engine := setupRouterTest(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/carts/live", nil))
	var env struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if env.StatusCode != 503 {
		t.Fatalf("live list without shopify want 503 got %d", env.StatusCode)
	}
}
