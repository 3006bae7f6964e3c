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

func setupSyncServiceTest(t *testing.T, source *fakeCheckoutSource, now time.Time) (*CheckoutSyncService, *repository.GormCheckoutRepository) {
	t.Helper()
	repo := repository.NewCheckoutRepository(openServiceTestDB(t))
	svc := NewCheckoutSyncService(source, repo, 72*time.Hour)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestComputeWatermark(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	floor := now.Add(-72 * time.Hour)
	if got := ComputeWatermark(nil, now, 72*time.Hour); !got.Equal(floor) {
		t.Fatalf("empty store want floor, got %v", got)
	}
	old := now.Add(-30 * 24 * time.Hour)
	if got := ComputeWatermark(&old, now, 72*time.Hour); !got.Equal(floor) {
		t.Fatalf("stale max want floor, got %v", got)
	}
	recent := now.Add(-time.Hour)
	if got := ComputeWatermark(&recent, now, 72*time.Hour); !got.Equal(recent) {
		t.Fatalf("recent max want itself, got %v", got)
	}
}

func TestSyncEmptyStoreUsesLookbackFloor(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	source := &fakeCheckoutSource{}
	svc, _ := setupSyncServiceTest(t, source, now)

	result, err := svc.Sync(context.Background(), "")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.Inserted != 0 || result.TotalCount != 0 || result.Pages != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Trigger != SyncTriggerManual {
		t.Fatalf("default trigger want manual, got %s", result.Trigger)
	}
	if len(source.calls) != 1 || !source.calls[0].CreatedAtMin.Equal(now.Add(-72*time.Hour)) {
		t.Fatalf("first request should start at now-3d: %+v", source.calls)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	source := &fakeCheckoutSource{pages: [][]shopify.Checkout{{
		newTestCheckout("101", now.Add(-2*time.Hour), "10.00"),
		newTestCheckout("102", now.Add(-time.Hour), "20.00"),
	}}}
	svc, repo := setupSyncServiceTest(t, source, now)

	first, err := svc.Sync(context.Background(), SyncTriggerCLI)
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if first.Inserted != 2 || first.TotalCount != 2 {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if _, err := repo.UpdateField("101", constants.CartFieldStatus, constants.CartStatusCompleted); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	second, err := svc.Sync(context.Background(), SyncTriggerCLI)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if second.TotalCount != 2 {
		t.Fatalf("resync should not duplicate rows, total=%d", second.TotalCount)
	}
	if !second.Watermark.Equal(now.Add(-time.Hour)) {
		t.Fatalf("second watermark should be store max, got %v", second.Watermark)
	}
	row, err := repo.GetByID("101")
	if err != nil || row == nil {
		t.Fatalf("get row failed: %v", err)
	}
	if row.Status != constants.CartStatusCompleted {
		t.Fatalf("resync should keep status, got %s", row.Status)
	}
	if row.CartValue.String() != "10.00" || len(ParseStoredItems(row.Items)) != 1 {
		t.Fatalf("unexpected stored row: %+v", row)
	}
}

func TestSyncOverlappingPagesKeepsOneRow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	source := &fakeCheckoutSource{pages: [][]shopify.Checkout{
		{newTestCheckout("201", now.Add(-3*time.Hour), "5.00"), newTestCheckout("202", now.Add(-2*time.Hour), "6.00")},
		{newTestCheckout("202", now.Add(-2*time.Hour), "6.50"), newTestCheckout("203", now.Add(-time.Hour), "7.00")},
	}}
	svc, repo := setupSyncServiceTest(t, source, now)

	result, err := svc.Sync(context.Background(), SyncTriggerQueue)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.Pages != 2 || result.Inserted != 4 || result.TotalCount != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(source.calls) != 2 || source.calls[1].PageURL != "page-1" {
		t.Fatalf("cursor not followed: %+v", source.calls)
	}
	row, err := repo.GetByID("202")
	if err != nil || row == nil {
		t.Fatalf("get row failed: %v", err)
	}
	if row.CartValue.String() != "6.50" {
		t.Fatalf("later page should win, got %s", row.CartValue)
	}
}

func TestSyncPageErrorAbortsAndKeepsEarlierPages(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	upstream := errors.New("upstream boom")
	source := &fakeCheckoutSource{
		pages: [][]shopify.Checkout{
			{newTestCheckout("301", now.Add(-2*time.Hour), "1.00")},
			{newTestCheckout("302", now.Add(-time.Hour), "2.00")},
		},
		failAt: 2,
		err:    upstream,
	}
	svc, repo := setupSyncServiceTest(t, source, now)

	if _, err := svc.Sync(context.Background(), SyncTriggerManual); !errors.Is(err, upstream) {
		t.Fatalf("want upstream error, got %v", err)
	}
	total, err := repo.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("first page should be kept, total=%d", total)
	}
	status, err := svc.LastStatus(context.Background())
	if err != nil || status == nil {
		t.Fatalf("last status missing: %v", err)
	}
	if status.LastError == "" || status.LastErrorAt == nil {
		t.Fatalf("last error not recorded: %+v", status)
	}
}

func TestSyncWithoutSource(t *testing.T) {
	repo := repository.NewCheckoutRepository(openServiceTestDB(t))
	svc := NewCheckoutSyncService(nil, repo, 0)
	if _, err := svc.Sync(context.Background(), SyncTriggerManual); !errors.Is(err, ErrShopifyNotConfigured) {
		t.Fatalf("want ErrShopifyNotConfigured, got %v", err)
	}
}

func TestCheckoutToRow(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.FixedZone("CST", 8*3600))
	checkout := shopify.Checkout{ID: "9", CreatedAt: created, SubtotalPrice: "abc", Email: " a@b.c "}
	row := CheckoutToRow(checkout, created)
	if row.ID != "9" || row.CreatedAt.Location() != time.UTC || !row.CreatedAt.Equal(created) {
		t.Fatalf("unexpected row identity: %+v", row)
	}
	if string(row.Items) != "[]" || row.CartValue.String() != "0.00" || row.Email != "a@b.c" {
		t.Fatalf("unexpected defaults: items=%s value=%s email=%q", row.Items, row.CartValue, row.Email)
	}
}
