package repository

import (
	"testing"

	"github.com/Markwebsolutions/abandoncart/internal/models"
)

func TestTemplateListFilterAndUsage(t *testing.T) {
	repo := NewTemplateRepository(openRepositoryTestDB(t))
	seed := []*models.Template{
		{Type: "whatsapp", Name: "Reminder", Text: "Hi {name}", Category: "reminder"},
		{Type: "email", Name: "Discount", Text: "10% off {product}", Category: "offer"},
		{Type: "whatsapp", Name: "Follow up", Text: "Still there?", Category: "reminder"},
	}
	for _, tpl := range seed {
		if err := repo.Create(tpl); err != nil {
			t.Fatalf("create template failed: %v", err)
		}
	}

	list, total, err := repo.List(TemplateListFilter{Type: "whatsapp"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(list) != 2 || list[0].ID > list[1].ID {
		t.Fatalf("unexpected whatsapp list: total=%d %+v", total, list)
	}

	searched, _, err := repo.List(TemplateListFilter{Search: "product"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(searched) != 1 || searched[0].Name != "Discount" {
		t.Fatalf("unexpected search result: %+v", searched)
	}

	if err := repo.IncrementUsage(seed[0].ID); err != nil {
		t.Fatalf("increment usage failed: %v", err)
	}
	got, _ := repo.GetByID(seed[0].ID)
	if got == nil || got.UsageCount != 1 {
		t.Fatalf("usage count want 1 got %+v", got)
	}

	deleted, err := repo.Delete(seed[1].ID)
	if err != nil || !deleted {
		t.Fatalf("delete failed: deleted=%v err=%v", deleted, err)
	}
	deleted, _ = repo.Delete(seed[1].ID)
	if deleted {
		t.Fatalf("second delete should report nothing deleted")
	}
}
