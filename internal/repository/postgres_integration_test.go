//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	_ = db.Migrator().DropTable(models.AllModels()...)
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(models.AllModels()...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresCheckoutUpsertKeepsStatus(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewCheckoutRepository(db)
	base := time.Now().UTC().Truncate(time.Second).Add(-24 * time.Hour)

	if err := repo.UpsertBatch([]models.AbandonedCheckout{
		newCheckoutRow("2001", base, "10.00"),
		newCheckoutRow("2002", base.Add(time.Hour), "20.00"),
	}); err != nil {
		t.Fatalf("initial upsert failed: %v", err)
	}
	if _, err := repo.UpdateField("2001", constants.CartFieldStatus, constants.CartStatusCompleted); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	again := newCheckoutRow("2001", base, "15.00")
	if err := repo.UpsertBatch([]models.AbandonedCheckout{again}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	row, err := repo.GetByID("2001")
	if err != nil || row == nil {
		t.Fatalf("get row failed: %v", err)
	}
	if row.Status != constants.CartStatusCompleted {
		t.Fatalf("status should survive resync, got %s", row.Status)
	}
	if row.CartValue.String() != "15.00" {
		t.Fatalf("cart value should be refreshed, got %s", row.CartValue.String())
	}

	latest, err := repo.MaxCreatedAt()
	if err != nil || latest == nil || !latest.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected watermark %v err=%v", latest, err)
	}
}

func TestPostgresTemplateSearchUsesILike(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewTemplateRepository(db)

	if err := repo.Create(&models.Template{Type: "whatsapp", Name: "Gentle Reminder", Text: "Hi {name}", Category: "reminder"}); err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	rows, total, err := repo.List(TemplateListFilter{Page: 1, PageSize: 10, Search: "gentle"})
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("case-insensitive search want 1 got total=%d len=%d", total, len(rows))
	}
}
