package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/models"
	"github.com/Markwebsolutions/abandoncart/internal/shopify"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func strPtr(v string) *string {
	return &v
}

// fakeCheckoutSource 按页返回预置弃单，可在指定页注入错误
type fakeCheckoutSource struct {
	mu      sync.Mutex
	pages   [][]shopify.Checkout
	failAt  int // 1 起，0 表示不失败
	err     error
	calls   []shopify.ListParams
	current int
}

func (f *fakeCheckoutSource) ListAbandonedCheckouts(_ context.Context, params shopify.ListParams) (*shopify.CheckoutPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, params)
	index := 0
	if params.PageURL != "" {
		if _, err := fmt.Sscanf(params.PageURL, "page-%d", &index); err != nil {
			return nil, err
		}
	}
	f.current = index
	if f.failAt > 0 && index+1 == f.failAt {
		return nil, f.err
	}
	page := &shopify.CheckoutPage{}
	if index < len(f.pages) {
		page.Checkouts = f.pages[index]
	}
	if index+1 < len(f.pages) {
		page.NextPageURL = fmt.Sprintf("page-%d", index+1)
	}
	return page, nil
}

func (f *fakeCheckoutSource) ListAllAbandonedCheckouts(ctx context.Context, createdAtMin, createdAtMax time.Time) ([]shopify.Checkout, error) {
	var all []shopify.Checkout
	params := shopify.ListParams{CreatedAtMin: createdAtMin, CreatedAtMax: createdAtMax}
	for {
		page, err := f.ListAbandonedCheckouts(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Checkouts...)
		if page.NextPageURL == "" {
			return all, nil
		}
		params = shopify.ListParams{PageURL: page.NextPageURL}
	}
}

func newTestCheckout(id string, createdAt time.Time, subtotal string) shopify.Checkout {
	return shopify.Checkout{
		ID:            shopify.FlexibleID(id),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		Email:         id + "@example.com",
		SubtotalPrice: subtotal,
		Customer:      &shopify.Customer{FirstName: "Ann", LastName: "Lee"},
		CustomerData:  map[string]interface{}{"first_name": "Ann", "last_name": "Lee"},
		LineItems:     []shopify.LineItem{{Title: "Mug", Quantity: 1, Price: subtotal}},
		LineItemsJSON: []byte(`[{"title":"Mug","quantity":1,"price":"` + subtotal + `"}]`),
	}
}
