package repository

import (
	"testing"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/models"
)

func TestRemarkListOrderAndCompositeDelete(t *testing.T) {
	repo := NewRemarkRepository(openRepositoryTestDB(t))
	base := time.Now().UTC().Truncate(time.Second)

	second := &models.CartRemark{CartID: "c1", Type: "sms", Message: "second", CreatedAt: base.Add(time.Minute)}
	first := &models.CartRemark{CartID: "c1", Type: "email", Message: "first", CreatedAt: base}
	other := &models.CartRemark{CartID: "c2", Type: "email", Message: "other", CreatedAt: base}
	for _, remark := range []*models.CartRemark{second, first, other} {
		if err := repo.Create(remark); err != nil {
			t.Fatalf("create remark failed: %v", err)
		}
	}

	list, err := repo.ListByCart("c1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 || list[0].Message != "first" || list[1].Message != "second" {
		t.Fatalf("unexpected remark order: %+v", list)
	}

	deleted, err := repo.DeleteByCartAndID("c2", first.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted {
		t.Fatalf("delete with wrong cart id must not remove the remark")
	}
	deleted, err = repo.DeleteByCartAndID("c1", first.ID)
	if err != nil || !deleted {
		t.Fatalf("delete by composite key failed: deleted=%v err=%v", deleted, err)
	}

	grouped, err := repo.ListByCarts([]string{"c1", "c2", "c3"})
	if err != nil {
		t.Fatalf("list by carts failed: %v", err)
	}
	if len(grouped["c1"]) != 1 || len(grouped["c2"]) != 1 || len(grouped["c3"]) != 0 {
		t.Fatalf("unexpected grouping: %+v", grouped)
	}
}
