package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/repository"
)

func TestFillTemplate(t *testing.T) {
	cart := Cart{
		Customer: CartCustomer{Name: "Ann"},
		Items:    []CartItem{{Name: "Mug"}, {Name: "Hat"}},
	}
	got := FillTemplate("Hi {name}, {product} waits. Bye {name}", cart)
	if got != "Hi Ann, Mug, Hat waits. Bye Ann" {
		t.Fatalf("unexpected fill: %q", got)
	}
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("+1 (555) 010-2030", "Hi Ann & co")
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}
	if link != "https://wa.me/15550102030?text=Hi%20Ann%20%26%20co" {
		t.Fatalf("unexpected link: %s", link)
	}
	if _, err := WhatsAppLink("n/a", "x"); !errors.Is(err, ErrPhoneMissing) {
		t.Fatalf("want ErrPhoneMissing, got %v", err)
	}
}

func TestTemplateLifecycleAndRender(t *testing.T) {
	db := openServiceTestDB(t)
	checkouts := repository.NewCheckoutRepository(db)
	remarks := repository.NewRemarkRepository(db)
	carts := NewCartService(checkouts, remarks, nil, nil, CartServiceOptions{})
	svc := NewTemplateService(repository.NewTemplateRepository(db), carts)

	kind, name, text, category := "WhatsApp", " Nudge ", "Hi {name}, {product} is waiting", "reminder"
	if _, err := svc.Create(TemplateInput{Type: &kind, Name: &name}); !errors.Is(err, ErrTemplateInvalid) {
		t.Fatalf("want ErrTemplateInvalid, got %v", err)
	}
	created, err := svc.Create(TemplateInput{Type: &kind, Name: &name, Text: &text, Category: &category})
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	if created.Type != "whatsapp" || created.Name != "Nudge" {
		t.Fatalf("input should be normalized: %+v", created)
	}

	starred := true
	updated, err := svc.Update(created.ID, TemplateInput{IsStarred: &starred})
	if err != nil {
		t.Fatalf("update template failed: %v", err)
	}
	if !updated.IsStarred || updated.Text != text {
		t.Fatalf("partial update lost fields: %+v", updated)
	}

	created2 := time.Now().UTC().Add(-time.Hour)
	checkout := newTestCheckout("t1", created2, "9.00")
	checkout.Phone = "+44 7000 111"
	checkout.CustomerData["phone"] = "+44 7000 111"
	row := CheckoutToRow(checkout, created2)
	if err := checkouts.Upsert(&row); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}

	rendered, err := svc.Render(created.ID, "t1")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rendered.Text != "Hi Ann Lee, Mug is waiting" {
		t.Fatalf("unexpected text: %q", rendered.Text)
	}
	if rendered.WhatsAppURL != "https://wa.me/447000111?text=Hi%20Ann%20Lee%2C%20Mug%20is%20waiting" {
		t.Fatalf("unexpected link: %s", rendered.WhatsAppURL)
	}
	reloaded, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get template failed: %v", err)
	}
	if reloaded.UsageCount != 1 {
		t.Fatalf("usage count want 1 got %d", reloaded.UsageCount)
	}

	if _, err := svc.Render(created.ID, "missing"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound, got %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("want ErrTemplateNotFound, got %v", err)
	}
}
