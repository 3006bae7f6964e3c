package service

import (
	"testing"
	"time"

	"github.com/Markwebsolutions/abandoncart/internal/constants"
	"github.com/Markwebsolutions/abandoncart/internal/models"
)

func TestEffectiveStatusFallsBackToBaseline(t *testing.T) {
	if got := EffectiveStatus(constants.CartStatusFailed, nil); got != constants.CartStatusFailed {
		t.Fatalf("want baseline failed, got %s", got)
	}
	if got := EffectiveStatus("", nil); got != constants.CartStatusPending {
		t.Fatalf("want pending when baseline empty, got %s", got)
	}
	remarks := []models.CartRemark{{ID: 1, Type: constants.RemarkTypeEmail, Message: "sent", CreatedAt: time.Now()}}
	if got := EffectiveStatus(constants.CartStatusInProgress, remarks); got != constants.CartStatusInProgress {
		t.Fatalf("remarks without status should not change result, got %s", got)
	}
}

func TestEffectiveStatusUsesLatestStatusRemark(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	remarks := []models.CartRemark{
		{ID: 3, Status: strPtr(constants.CartStatusCompleted), CreatedAt: base.Add(2 * time.Hour)},
		{ID: 1, Status: strPtr(constants.CartStatusInProgress), CreatedAt: base},
		{ID: 4, Type: constants.RemarkTypeSMS, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 2, Status: strPtr(constants.CartStatusFailed), CreatedAt: base.Add(time.Hour)},
	}
	if got := EffectiveStatus(constants.CartStatusPending, remarks); got != constants.CartStatusCompleted {
		t.Fatalf("want completed, got %s", got)
	}
}

func TestEffectiveStatusTieBreaksOnID(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	remarks := []models.CartRemark{
		{ID: 8, Status: strPtr(constants.CartStatusFailed), CreatedAt: at},
		{ID: 5, Status: strPtr(constants.CartStatusCompleted), CreatedAt: at},
	}
	if got := EffectiveStatus(constants.CartStatusPending, remarks); got != constants.CartStatusFailed {
		t.Fatalf("higher id should win on equal time, got %s", got)
	}
}
