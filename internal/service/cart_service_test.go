package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/repository"
	"github.com/Markwebsolutions/abandoncart/internal/shopify"
)

type cartServiceFixture struct {
	carts     *CartService
	remarks   *RemarkService
	checkouts *repository.GormCheckoutRepository
	source    *fakeCheckoutSource
	now       time.Time
}

func setupCartServiceTest(t *testing.T) *cartServiceFixture {
	t.Helper()
	db := openServiceTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	checkouts := repository.NewCheckoutRepository(db)
	remarkRepo := repository.NewRemarkRepository(db)
	source := &fakeCheckoutSource{}
	syncer := NewCheckoutSyncService(source, checkouts, 72*time.Hour)
	syncer.now = func() time.Time { return now }
	carts := NewCartService(checkouts, remarkRepo, source, syncer, CartServiceOptions{Lookback: 72 * time.Hour})
	carts.now = func() time.Time { return now }
	remarks := NewRemarkService(remarkRepo, checkouts)
	remarks.now = func() time.Time { return now }
	return &cartServiceFixture{carts: carts, remarks: remarks, checkouts: checkouts, source: source, now: now}
}

func TestSyncAndListStored(t *testing.T) {
	f := setupCartServiceTest(t)
	f.source.pages = [][]shopify.Checkout{{
		newTestCheckout("s1", f.now.Add(-2*time.Hour), "10.00"),
		newTestCheckout("s2", f.now.Add(-26*time.Hour), "30.00"),
		newTestCheckout("s3", f.now.Add(-5*24*time.Hour), "99.00"),
	}}

	result, err := f.carts.SyncAndList(context.Background(), CartQuery{}, SyncTriggerManual)
	if err != nil {
		t.Fatalf("sync and list failed: %v", err)
	}
	if result.Sync.TotalCount != 3 {
		t.Fatalf("all fetched rows should be stored, got %d", result.Sync.TotalCount)
	}
	page := result.Carts
	if page.Total != 2 || len(page.Items) != 2 || page.Items[0].ID != "s1" {
		t.Fatalf("default window should hold 2 newest carts: %+v", cartIDs(page.Items))
	}
	if page.Metrics.Total != 2 || page.Metrics.TotalValue.String() != "40.00" || page.Metrics.Urgent != 1 {
		t.Fatalf("unexpected metrics: %+v", page.Metrics)
	}

	if _, err := f.remarks.ChangeField("s2", "status", "completed", "Ann"); err != nil {
		t.Fatalf("change status failed: %v", err)
	}
	filtered, err := f.carts.ListStored(CartQuery{Filter: CartFilter{Status: constants.CartStatusCompleted}})
	if err != nil {
		t.Fatalf("list stored failed: %v", err)
	}
	if filtered.Total != 1 || filtered.Items[0].ID != "s2" || len(filtered.Items[0].Remarks) != 1 {
		t.Fatalf("status filter failed: %+v", filtered.Items)
	}

	older, err := f.carts.ListStored(CartQuery{Window: f.carts.DefaultWindow().Shift(-3)})
	if err != nil {
		t.Fatalf("list older failed: %v", err)
	}
	if older.Total != 1 || older.Items[0].ID != "s3" {
		t.Fatalf("shifted window failed: %v", cartIDs(older.Items))
	}
}

func TestListLiveDedupesAndAttachesRemarks(t *testing.T) {
	f := setupCartServiceTest(t)
	f.source.pages = [][]shopify.Checkout{
		{newTestCheckout("l1", f.now.Add(-time.Hour), "5.00")},
		{newTestCheckout("l1", f.now.Add(-time.Hour), "5.00"), newTestCheckout("l2", f.now.Add(-3*time.Hour), "8.00")},
	}
	if _, err := f.remarks.ChangeField("l2", "status", "in-progress", ""); err != nil {
		t.Fatalf("change status failed: %v", err)
	}

	page, err := f.carts.ListLive(context.Background(), CartQuery{})
	if err != nil {
		t.Fatalf("list live failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("duplicates should be removed: %v", cartIDs(page.Items))
	}
	if page.Items[1].ID != "l2" || page.Items[1].EffectiveStatus != constants.CartStatusInProgress {
		t.Fatalf("live cart should pick up stored remarks: %+v", page.Items[1])
	}
	if page.Items[0].Source != constants.CartSourceLive {
		t.Fatalf("source want live got %s", page.Items[0].Source)
	}
	total, err := f.checkouts.Count()
	if err != nil || total != 0 {
		t.Fatalf("live listing should not write rows: total=%d err=%v", total, err)
	}
}

func TestCartServiceErrors(t *testing.T) {
	f := setupCartServiceTest(t)
	if _, err := f.carts.Get("nope"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound, got %v", err)
	}
	if _, err := f.carts.UpdateField("nope", "status", "failed"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound, got %v", err)
	}
	if _, err := f.carts.UpdateField("nope", "email", "x"); !errors.Is(err, ErrInvalidCartField) {
		t.Fatalf("want ErrInvalidCartField, got %v", err)
	}
	bad := TimeWindow{Start: f.now, End: f.now.Add(-time.Hour)}
	if _, err := f.carts.ListStored(CartQuery{Window: bad}); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("want ErrInvalidDateRange, got %v", err)
	}

	offline := NewCartService(f.checkouts, repository.NewRemarkRepository(openServiceTestDB(t)), nil, nil, CartServiceOptions{})
	if _, err := offline.ListLive(context.Background(), CartQuery{}); !errors.Is(err, ErrShopifyNotConfigured) {
		t.Fatalf("want ErrShopifyNotConfigured, got %v", err)
	}
	if _, err := offline.SyncAndList(context.Background(), CartQuery{}, ""); !errors.Is(err, ErrShopifyNotConfigured) {
		t.Fatalf("want ErrShopifyNotConfigured, got %v", err)
	}
}

func TestRecentAndGet(t *testing.T) {
	f := setupCartServiceTest(t)
	for i, id := range []string{"r1", "r2", "r3"} {
		row := CheckoutToRow(newTestCheckout(id, f.now.Add(-time.Duration(i+1)*time.Hour), "1.00"), f.now)
		if err := f.checkouts.Upsert(&row); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	recent, err := f.carts.Recent(2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "r1" {
		t.Fatalf("unexpected recent: %v", cartIDs(recent))
	}
	cart, err := f.carts.Get("r3")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if cart.Customer.Name != "Ann Lee" || len(cart.Items) != 1 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if _, err := ParseStatusFilter("bogus"); !errors.Is(err, ErrInvalidCartStatus) {
		t.Fatalf("want ErrInvalidCartStatus, got %v", err)
	}
	if status, err := ParseStatusFilter(" ALL "); err != nil || status != "" {
		t.Fatalf("all should map to empty filter, got %q %v", status, err)
	}
}
